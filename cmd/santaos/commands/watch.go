package commands

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"santaos/internal/domain"
	"santaos/internal/syncstore"
)

func watchCmd() *cobra.Command {
	var updates int
	cmd := &cobra.Command{
		Use:       "watch <wishlists|tasks|deliveries|workers>",
		Short:     "Poll a collection and re-render it on every change",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"wishlists", "tasks", "deliveries", "workers"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentUser(); err != nil {
				return err
			}
			if appCtx.Config.MetricsAddr != "" && promReg != nil {
				stop, err := serveMetrics(appCtx.Config.MetricsAddr)
				if err != nil {
					return err
				}
				defer stop()
			}
			switch domain.Kind(args[0]) {
			case domain.KindWishlists:
				return watch(cmd, appCtx.Wishlists, renderWishlists, updates)
			case domain.KindTasks:
				return watch(cmd, appCtx.Tasks, renderTasks, updates)
			case domain.KindDeliveries:
				return watch(cmd, appCtx.Deliveries, renderDeliveries, updates)
			case domain.KindWorkers:
				return watch(cmd, appCtx.Workers, renderWorkers, updates)
			}
			return fmt.Errorf("unknown resource %q", args[0])
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address")
	cmd.Flags().IntVar(&updates, "updates", 0, "exit after this many renders (0 runs until interrupted)")
	return cmd
}

// watch renders s after each settled state change until ctx ends.
func watch[T domain.Resource](cmd *cobra.Command, s *syncstore.Store[T], render func(*table, []T), updates int) error {
	changes, unsubscribe := s.Changes()
	defer unsubscribe()
	h := s.Start(appCtx.Config.Interval)
	defer h.Stop()

	out := cmd.OutOrStdout()
	var last time.Time
	var lastErr error
	rendered := 0
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case <-changes:
		}
		st := s.State()
		if st.IsLoading || (st.LastFetchedAt.Equal(last) && st.LastError == lastErr) {
			continue
		}
		last, lastErr = st.LastFetchedAt, st.LastError
		if err := frame(out, st, render); err != nil {
			return err
		}
		rendered++
		if updates > 0 && rendered >= updates {
			return nil
		}
	}
}

func frame[T domain.Resource](out io.Writer, st syncstore.State[T], render func(*table, []T)) error {
	fmt.Fprintf(out, "== %s: %d items, fetched %s\n", st.Kind, len(st.Items), domain.Timestamp(st.LastFetchedAt))
	if st.LastError != nil {
		fmt.Fprintf(out, "!! last refresh failed: %s (showing previous data)\n", st.Reason())
	}
	t := newTable(out)
	render(t, st.Items)
	return t.flush()
}

// metricsHandler serves Prometheus series on /metrics and the expvar
// recorder (with the runtime's memstats) on /debug/vars.
func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/debug/vars", expvar.Handler())
	return mux
}

func serveMetrics(addr string) (func(), error) {
	srv := &http.Server{Addr: addr, Handler: metricsHandler(promReg), ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return nil, fmt.Errorf("metrics listener: %w", err)
	case <-time.After(50 * time.Millisecond):
	}
	appCtx.Logger.Info("serving metrics", "addr", addr, "expvar", appCtx.Metrics.Name())
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appCtx.Logger.Warn("metrics shutdown", "error", err)
		}
	}, nil
}
