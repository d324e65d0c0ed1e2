package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/valuetrack/internal/config"
	"github.com/vango-dev/valuetrack/internal/demo"
	"github.com/vango-dev/valuetrack/internal/errors"
	"github.com/vango-dev/valuetrack/pkg/inspect"
	"github.com/vango-dev/valuetrack/pkg/middleware"
	"github.com/vango-dev/valuetrack/pkg/track"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		metrics    bool
		tick       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve live demo objects through the inspector",
		Long: `Start the inspector over a small world of linked demo objects
that change on every tick.

Routes:
  GET /objects                            list objects
  GET /objects/{id}                       cached values
  GET /objects/{id}/properties/{name}     one property
  GET /objects/{id}/watch?property=path   WebSocket stream
  GET /metrics                            Prometheus metrics (--metrics)

Examples:
  valuetrack serve
  valuetrack serve --addr=:8080 --metrics
  valuetrack serve --config=valuetrack.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// Apply command-line overrides
			if addr != "" {
				cfg.Inspector.Addr = addr
			}
			if metrics {
				cfg.Metrics.Enabled = true
			}
			if tick != "" {
				cfg.Demo.Tick = tick
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from valuetrack.json)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to valuetrack.json")
	cmd.Flags().BoolVarP(&metrics, "metrics", "m", false, "Expose Prometheus metrics")
	cmd.Flags().StringVar(&tick, "tick", "", "Interval between demo mutations (default from valuetrack.json)")

	return cmd
}

// loadConfig reads path, or valuetrack.json in the working directory when
// no path is given. Without either, defaults are used.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if _, err := os.Stat(config.ConfigFileName); err == nil {
		return config.Load(".")
	}
	return config.New(), nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	interval, err := cfg.Tick()
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	var monitors []track.Monitor

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		monitors = append(monitors, middleware.Prometheus(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithPerName(cfg.Metrics.PerName),
		))
		router.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	if cfg.Tracing.Enabled {
		tracing := middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName))
		defer tracing.Close()
		monitors = append(monitors, tracing)
	}

	opts := []track.Option{track.WithLogger(logger)}
	if len(monitors) > 0 {
		opts = append(opts, track.WithMonitor(track.Monitors(monitors...)))
	}

	inspector := inspect.New(
		inspect.WithLogger(logger),
		inspect.WithBufferSize(cfg.Inspector.BufferSize),
		inspect.WithCheckOrigin(originChecker(cfg.Inspector.AllowedOrigins)),
	)
	world := demo.NewWorld(opts...)
	for _, t := range world.Trackers() {
		inspector.Register(t)
	}
	router.Mount("/", inspector)

	srv := &http.Server{
		Addr:              cfg.Inspector.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	success("Inspector listening on http://%s/objects", cfg.Inspector.Addr)
	if cfg.Metrics.Enabled {
		info("Metrics on http://%s%s", cfg.Inspector.Addr, cfg.Metrics.Path)
	}
	info("Demo objects change every %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var stepErr error
			inspector.Do(func() { stepErr = world.Step() })
			if stepErr != nil {
				logger.Error("demo step failed", slog.Any("error", stepErr))
			}
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return errors.New(errors.CodeServe).Wrap(err).WithDetail(err.Error())
			}
			return nil
		case <-ctx.Done():
			info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			inspector.Close()
			err := srv.Shutdown(shutdownCtx)
			inspector.Do(world.Dispose)
			if err != nil {
				return errors.New(errors.CodeServe).Wrap(err)
			}
			return nil
		}
	}
}

// originChecker allows the listed origins. "*" allows every origin and an
// empty list keeps the same-origin default.
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		if set["*"] {
			return true
		}
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
