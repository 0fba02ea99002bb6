package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/meetpresence/internal/config"
	"github.com/teemow/meetpresence/internal/indicator"
	"github.com/teemow/meetpresence/internal/instrumentation"
	"github.com/teemow/meetpresence/internal/logging"
	"github.com/teemow/meetpresence/internal/meetapi"
	"github.com/teemow/meetpresence/internal/netcheck"
	"github.com/teemow/meetpresence/internal/reconciler"
	"github.com/teemow/meetpresence/internal/server"
	"github.com/teemow/meetpresence/internal/tabs"
)

// MetricsConfig holds configuration for the ops server.
type MetricsConfig struct {
	// Enabled determines whether to start the ops server (default: true)
	Enabled bool

	// Addr is the address for the ops server (e.g., ":9090")
	Addr string
}

func newWatchCmd() *cobra.Command {
	var (
		debugMode    bool
		source       string
		pollInterval time.Duration
		devtoolsURL  string
		account      string
		spaces       []string
		// Ops server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the presence daemon",
		Long: `Watch for active Google Meet sessions and keep the configured Home
Assistant entity in sync.

Presence sources:
  - browser:  poll the Chrome DevTools endpoint for open Meet call tabs
              (requires Chrome started with --remote-debugging-port)
  - meet-api: poll the Google Meet API for active conferences in the
              configured spaces (requires 'meetpresence auth')

Flags override the stored configuration for this run only; use
'meetpresence configure' to change it permanently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(debugMode)

			store, err := config.NewStore()
			if err != nil {
				return fmt.Errorf("failed to locate config directory: %w", err)
			}

			cfg, err := store.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cmd.Flags().Changed("source") {
				cfg.Source = config.Source(source)
			}
			if cmd.Flags().Changed("poll-interval") {
				cfg.PollInterval = pollInterval
			}
			if cmd.Flags().Changed("devtools-url") {
				cfg.DevToolsURL = devtoolsURL
			}
			if cmd.Flags().Changed("account") {
				cfg.Account = account
			}
			if cmd.Flags().Changed("space") {
				cfg.Spaces = spaces
			}

			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					metricsConfig.Addr = addr
				}
			}

			return runWatch(store, cfg, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&source, "source", "", "Presence source: browser or meet-api (overrides config)")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", config.DefaultPollInterval, "Interval between presence observations (overrides config)")
	cmd.Flags().StringVar(&devtoolsURL, "devtools-url", config.DefaultDevToolsURL, "Chrome DevTools base URL for the browser source (overrides config)")
	cmd.Flags().StringVar(&account, "account", "", "Google account name for the meet-api source (overrides config)")
	cmd.Flags().StringSliceVar(&spaces, "space", nil, "Meet space to watch with the meet-api source; repeatable (overrides config)")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the ops server with metrics and health endpoints")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultOpsAddr, "Ops server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runWatch(store *config.Store, cfg config.Config, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer shutdownCancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	state := &indicator.State{}
	ind := indicator.Multi{indicator.NewLog(slog.Default()), state}

	healthChecker := server.NewHealthChecker(func() string {
		return string(state.Current())
	})

	// Start the ops server if enabled
	if metricsConfig.Enabled && provider.Enabled() {
		opsServer, err := server.NewOpsServer(server.OpsServerConfig{
			Addr:                    metricsConfig.Addr,
			InstrumentationProvider: provider,
			Health:                  healthChecker,
		})
		if err != nil {
			return fmt.Errorf("failed to create ops server: %w", err)
		}

		// Use a ready channel to confirm the ops server started successfully
		opsReady := make(chan struct{})
		opsErr := make(chan error, 1)
		go func() {
			if err := opsServer.StartWithReadySignal(opsReady); err != nil && !errors.Is(err, http.ErrServerClosed) {
				opsErr <- err
			}
			close(opsErr)
		}()

		select {
		case <-opsReady:
			slog.Info("ops server started", slog.String("addr", opsServer.Addr()))
		case err := <-opsErr:
			return fmt.Errorf("ops server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("ops server startup timed out")
		}

		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer shutdownCancel()
			if err := opsServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error shutting down ops server", logging.Err(err))
			}
		}()
	}

	if cfg.Source == "" {
		cfg.Source = config.SourceBrowser
	}

	source, err := buildSource(ctx, cfg)
	if err != nil {
		return err
	}
	source = &instrumentedSource{
		inner:   source,
		name:    string(cfg.Source),
		metrics: provider.Metrics(),
	}

	rec := reconciler.New(store, netcheck.New(), ind)
	rec.SetMetrics(provider.Metrics())

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}

	watcher := tabs.NewWatcher(source, interval, func(ctx context.Context, inMeeting bool) {
		rec.Observe(ctx, inMeeting)
	})

	logDeliverySummary(slog.Default(), cfg)
	slog.Info("watching for meetings",
		slog.String("source", string(cfg.Source)),
		slog.Duration("poll_interval", interval))
	healthChecker.SetReady(true)

	if err := watcher.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}

	healthChecker.SetReady(false)
	slog.Info("shutdown signal received, stopping watcher")
	return nil
}

// logDeliverySummary logs where deliveries will go. Tokens and webhook
// URLs are secrets, so only sanitized forms reach the log.
func logDeliverySummary(logger *slog.Logger, cfg config.Config) {
	switch cfg.Method {
	case config.MethodAPI:
		logger.Info("delivery configured",
			logging.Method(string(cfg.Method)),
			slog.String("host", cfg.Host),
			slog.String("token", logging.SanitizeToken(cfg.Token)),
			slog.String("entity_id", cfg.EntityID))
	case config.MethodWebhook:
		logger.Info("delivery configured",
			logging.Method(string(cfg.Method)),
			slog.String("webhook_url", logging.SanitizeURL(cfg.WebhookURL)))
	default:
		logger.Info("delivery not configured yet, observing only")
	}
}

// buildSource creates the presence source selected by the config.
func buildSource(ctx context.Context, cfg config.Config) (tabs.Source, error) {
	switch cfg.Source {
	case config.SourceBrowser, "":
		url := cfg.DevToolsURL
		if url == "" {
			url = config.DefaultDevToolsURL
		}
		return tabs.NewDevToolsClient(url), nil
	case config.SourceMeetAPI:
		account := cfg.Account
		if account == "" {
			account = config.DefaultAccount
		}
		return meetapi.NewSource(ctx, account, cfg.Spaces)
	default:
		return nil, fmt.Errorf("unknown presence source %q (expected browser or meet-api)", cfg.Source)
	}
}

// instrumentedSource counts observations per source and outcome.
type instrumentedSource struct {
	inner   tabs.Source
	name    string
	metrics *instrumentation.Metrics
}

func (s *instrumentedSource) InMeeting(ctx context.Context) (bool, error) {
	inMeeting, err := s.inner.InMeeting(ctx)
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	s.metrics.RecordObservation(ctx, s.name, status)
	return inMeeting, err
}
