package main

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

	"logistics/api"
	"logistics/cmd"
	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/telemetry"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
)

const serviceVersion = "1.0.0"

func main() {
	configs, err := cmd.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", configs.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		log.Fatalf("Error running service: %v", err)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	telemetry.InstallPropagator()
	if configs.TracingEnabled {
		shutdownTracing, err := telemetry.InitTracerProvider(ctx, configs.OTLPEndpoint, configs.ServiceName, serviceVersion)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown(logger, "tracer provider", shutdownTracing)
	}

	metricsHandler, shutdownMetrics, err := telemetry.InitMeterProvider(configs.ServiceName, serviceVersion)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer shutdown(logger, "meter provider", shutdownMetrics)

	if err = runtime.Start(); err != nil {
		return fmt.Errorf("start runtime metrics: %w", err)
	}

	metrics, err := telemetry.NewOperationMetrics(otel.GetMeterProvider())
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close adapters", "error", err)
		}
	}()

	doc, err := api.Load(ctx)
	if err != nil {
		return err
	}
	if err = api.Register(doc); err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, doc, metricsHandler, metrics, logger, configs.HTTPPort)
}

func startWebServer(
	ctx context.Context,
	app *cmd.CompositionRoot,
	doc *openapi3.T,
	metricsHandler http.Handler,
	metrics *telemetry.OperationMetrics,
	logger *slog.Logger,
	port string,
) error {
	e := httpadapter.NewRouter(httpadapter.RouterConfig{
		Server:         app.CreateServer(),
		Verifier:       app.TokenVerifier(),
		Metrics:        metrics,
		Logger:         logger,
		Document:       doc,
		MetricsHandler: metricsHandler,
	})
	e.Logger.SetLevel(log.INFO)

	server := &http.Server{
		Addr: fmt.Sprintf("0.0.0.0:%s", port),
		Handler: otelhttp.NewHandler(e, "logistics",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down http server")
	return server.Shutdown(shutdownCtx)
}

func shutdown(logger *slog.Logger, name string, fn telemetry.ShutdownFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.Error("shutdown "+name, "error", err)
	}
}
