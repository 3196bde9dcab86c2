package toolservice

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mycelian/tool-catalog/internal/api"
	"github.com/mycelian/tool-catalog/internal/catalog"
	"github.com/mycelian/tool-catalog/internal/config"
	"github.com/mycelian/tool-catalog/internal/health"
	"github.com/mycelian/tool-catalog/internal/logger"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// ServiceName tags every log line.
const ServiceName = "tool-service"

// Run starts the tool catalog HTTP server and blocks until shutdown or error.
func Run(cfg *config.Config) error {
	log := logger.New(ServiceName)
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Error().Stack().Err(err).Msg("Invalid log level")
		return err
	}
	zlog.Logger = log

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	ln, err := net.Listen("tcp", cfg.GetHTTPAddr())
	if err != nil {
		err = pkgerrors.Wrapf(err, "listen on %s", cfg.GetHTTPAddr())
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
	return Serve(ctx, ln, cfg, log)
}

// Serve runs the server on ln until ctx is cancelled or the server fails.
// ln is closed on return.
func Serve(ctx context.Context, ln net.Listener, cfg *config.Config, log zerolog.Logger) error {
	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("addr", ln.Addr().String()).
		Str("data_file", cfg.DataFile).
		Msg("Tool service starting")

	if _, err := os.Stat(cfg.DataFile); err != nil {
		log.Warn().Err(err).Str("data_file", cfg.DataFile).Msg("Tool data file not readable yet; /api/tools will fail until it is")
	}

	src := catalog.NewFileSource(cfg.DataFile)
	svcHealth := startHealthCheckers(ctx, cfg, log, src)

	server := newHTTPServer(ctx, api.NewHandler(log, src, svcHealth))
	errCh := serveHTTP(server, ln, log)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// startHealthCheckers probes once synchronously, then starts the catalog
// checker and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, src *catalog.FileSource) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	catalogChecker := catalog.NewHealthChecker(src, log, probeTimeout)
	svcHealth := health.NewServiceHealthChecker(log, catalogChecker)

	// First results are in place before the server accepts requests.
	catalogChecker.Check(ctx)
	svcHealth.Evaluate()

	go catalogChecker.Start(ctx, interval)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, ln net.Listener, log zerolog.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server starting")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
