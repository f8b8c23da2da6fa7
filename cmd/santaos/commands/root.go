package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"santaos/internal/app"
	"santaos/internal/domain"
	"santaos/internal/observability"
)

var (
	envFile     string
	home        string
	apiURL      string
	passphrase  string
	interval    time.Duration
	timeout     time.Duration
	verbose     bool
	metricsAddr string

	appCtx  *app.Wire
	promReg *prometheus.Registry
)

// Execute runs the CLI until it finishes or is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Flag globals are reset on every call.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "santaos",
		Short:         "Workshop logistics client: wishlists, tasks and deliveries",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(envFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("home") {
				cfg.Home = home
			}
			if flags.Changed("api") {
				cfg.APIURL = apiURL
			}
			if flags.Changed("passphrase") {
				cfg.Passphrase = passphrase
			}
			if flags.Changed("interval") {
				cfg.Interval = interval
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("verbose") {
				cfg.Verbose = verbose
			}
			if flags.Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}

			cfg.Logger = observability.NewTextLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if cfg.MetricsAddr != "" {
				promReg = prometheus.NewRegistry()
				promReg.MustRegister(collectors.NewGoCollector())
				rec, err := observability.NewPrometheusRecorder(promReg)
				if err != nil {
					return err
				}
				cfg.Metrics = rec
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}
			appCtx, err = app.NewWire(cfg)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file with SANTAOS_* settings")
	pf.StringVar(&home, "home", "", "config dir (default ~/.santaos)")
	pf.StringVar(&apiURL, "api", "", "API base URL (default "+app.DefaultAPIURL+")")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the stored session")
	pf.DurationVar(&interval, "interval", 0, "poll interval (default 30s)")
	pf.DurationVar(&timeout, "timeout", 0, "per-request timeout (default 15s)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		loginCmd(), logoutCmd(), whoamiCmd(),
		wishlistsCmd(), tasksCmd(), deliveriesCmd(),
		workersCmd(), workerCmd(), watchCmd(),
	)
	return root
}

// currentUser resumes the stored session with the configured passphrase.
func currentUser() (domain.User, error) {
	if appCtx.Config.Passphrase == "" {
		return domain.User{}, fmt.Errorf("passphrase required (-p)")
	}
	return appCtx.Resume(appCtx.Config.Passphrase)
}
