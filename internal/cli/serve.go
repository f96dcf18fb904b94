package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaupilot/internal/api"
	"restaupilot/internal/assistant"
	"restaupilot/internal/auth"
	"restaupilot/internal/config"
	"restaupilot/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand(root *RootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "API server port (overrides config)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg, cfg.Database.Seed)
	if err != nil {
		return err
	}
	defer store.Close()

	responder, err := newResponder(cfg.Assistant)
	if err != nil {
		return err
	}

	metrics := monitoring.NewMetrics()
	metrics.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	monitor := monitoring.NewMonitor()
	monitor.Set("assistant_provider", responder.Name())

	opts := api.Options{
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     metrics,
		Monitor:     monitor,
	}
	if cfg.Auth.Enabled {
		opts.Issuer = auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	dashboard := api.NewDashboardAPI(store, assistant.New(responder, api.AssistantObserver(metrics, monitor)), opts)

	servers := []*http.Server{{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: dashboard.Router,
	}}
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		servers = append(servers, &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		})
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			slog.Info("starting server", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server %s: %w", srv.Addr, err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("shutting down servers")
	case err = <-errCh:
		slog.Error("server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			slog.Error("server shutdown", "addr", srv.Addr, "error", serr)
		}
	}
	return err
}

func newResponder(cfg config.AssistantConfig) (assistant.Responder, error) {
	canned := assistant.NewCannedResponder(nil, cfg.ReplyDelay, rand.New(rand.NewSource(time.Now().UnixNano())))
	if cfg.Provider != "llm" {
		return canned, nil
	}
	model, err := assistant.NewOpenAIModel(cfg.Model, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return assistant.NewLLMResponder(model, canned), nil
}
