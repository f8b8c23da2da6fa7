package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"santaos/internal/domain"
	"santaos/internal/syncstore"
)

// viewError reports a failed fetch or mutation by its user-facing reason.
type viewError struct {
	what string
	err  error
}

func (e *viewError) Error() string { return e.what + ": " + domain.Reason(e.err) }
func (e *viewError) Unwrap() error { return e.err }

// open subscribes to s and waits for its first fetch.
func open[T domain.Resource](cmd *cobra.Command, s *syncstore.Store[T]) (*syncstore.Handle, syncstore.State[T], error) {
	h := s.Start(appCtx.Config.Interval)
	s.RefreshNow(cmd.Context())
	st := s.State()
	if st.LastError != nil {
		h.Stop()
		return nil, st, &viewError{what: "load " + s.Kind().String(), err: st.LastError}
	}
	return h, st, nil
}

// list renders the current snapshot of s.
func list[T domain.Resource](cmd *cobra.Command, s *syncstore.Store[T], render func(*table, []T)) error {
	if _, err := currentUser(); err != nil {
		return err
	}
	h, st, err := open(cmd, s)
	if err != nil {
		return err
	}
	defer h.Stop()
	t := newTable(cmd.OutOrStdout())
	render(t, st.Items)
	return t.flush()
}

// submit checks the role, then runs one mutation through s.
func submit[T domain.Resource](cmd *cobra.Command, s *syncstore.Store[T], id string, op domain.Operation, payload any) (T, error) {
	var zero T
	u, err := currentUser()
	if err != nil {
		return zero, err
	}
	if !u.CanMutate(s.Kind(), op) {
		return zero, fmt.Errorf("%s may not %s %s", u.Role, op, s.Kind())
	}
	h, _, err := open(cmd, s)
	if err != nil {
		return zero, err
	}
	defer h.Stop()

	out, err := s.Submit(cmd.Context(), id, op, payload)
	if err != nil {
		return zero, &viewError{what: fmt.Sprintf("%s %s", op, s.Kind()), err: err}
	}
	return out, nil
}

func done(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}
