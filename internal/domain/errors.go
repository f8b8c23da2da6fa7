package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrDuplicateInFlight matches any DuplicateInFlightError via errors.Is.
	ErrDuplicateInFlight = errors.New("mutation already in flight")

	// ErrNotSignedIn is returned when a view needs a user object and none is held.
	ErrNotSignedIn = errors.New("not signed in; run login first")
)

// NetworkError is a transport or timeout failure talking to the API.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request hit its deadline.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// ServerError is a non-2xx response or a payload that failed validation.
type ServerError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("api %s %s: %d %s: %s", e.Method, e.Path, e.Status, http.StatusText(e.Status), e.Message)
}

// DuplicateInFlightError rejects a submission while the same (id, op) is pending.
type DuplicateInFlightError struct {
	Kind       Kind
	ResourceID string
	Op         Operation
}

func (e *DuplicateInFlightError) Error() string {
	id := e.ResourceID
	if id == "" {
		id = "(new)"
	}
	return fmt.Sprintf("%s %s: %s already in flight", e.Kind, id, e.Op)
}

// Is lets errors.Is(err, ErrDuplicateInFlight) match.
func (e *DuplicateInFlightError) Is(target error) bool { return target == ErrDuplicateInFlight }

// Reason extracts the user-facing failure reason from err.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return http.StatusText(se.Status)
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return "request timed out"
		}
		return ne.Err.Error()
	}
	return err.Error()
}
