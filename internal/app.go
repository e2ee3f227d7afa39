package internal

import (
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"vcheck/internal/checkin/interfaces"
	"vcheck/internal/controllers"
	"vcheck/internal/providers"
	"vcheck/internal/structures"
)

const serverShutdownTimeout = 5 * time.Second

type App struct {
	WebServer *http.Server
}

// NewHandler assembles the HTTP surface: API routes behind metrics and access
// logging, plus health and metrics endpoints.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, apiMux)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return providers.RequestLogMiddleware(logger, conf.Proxy, mux)
}

func NewApp(handler http.Handler, ingestion interfaces.IngestionInterface, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger) (*App, error) {
	defer logger.Close()

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	// consumers outlive request handling, so they get their own context and stop explicitly
	if err := ingestion.Start(context.Background()); err != nil {
		logger.Errorf(providers.TypeApp, "Unable to start checkin ingestion: %s", err)
		return nil, fmt.Errorf("start ingestion: %w", err)
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if err := app.shutdown(ingestion, scheduler, conf, logger); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return nil, runErr
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}

// shutdown stops intake before draining: no new requests, then the queues.
func (app *App) shutdown(ingestion interfaces.IngestionInterface, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger) error {
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	serverErr := app.WebServer.Shutdown(ctx)
	if serverErr != nil {
		logger.Errorf(providers.TypeApp, "HTTP shutdown: %s", serverErr)
	}

	drainCtx, drainCancel := context.WithTimeout(context.Background(), conf.Checkin.ShutdownGrace)
	defer drainCancel()
	if err := ingestion.Stop(drainCtx); err != nil {
		logger.Errorf(providers.TypeApp, "Checkin ingestion stopped with error: %s", err)
		if serverErr == nil {
			return err
		}
	}
	return serverErr
}
