package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"santaos/internal/devapi"
)

func main() {
	var (
		addr  string
		seed  bool
		quiet bool
	)
	root := &cobra.Command{
		Use:          "northpole",
		Short:        "In-memory SantaOS API for local demos",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(os.Stderr, "northpole ", log.LstdFlags)
			api := devapi.New(logger)
			api.QuietWrites = quiet
			if seed {
				api.Seed()
			}

			srv := &http.Server{Addr: addr, Handler: api.Handler(), ReadHeaderTimeout: 5 * time.Second}
			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			logger.Printf("listening on %s (seed=%t quiet-writes=%t)", addr, seed, quiet)

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Println("stopped")
			return nil
		},
	}
	root.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	root.Flags().BoolVar(&seed, "seed", true, "load demo data")
	root.Flags().BoolVar(&quiet, "quiet-writes", false, "answer mutations with 204 and no body")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
