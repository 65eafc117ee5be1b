package main

//
//  @title           p2pulse API
//  @version         1.0
//  @description     Profit dashboard for peer-to-peer crypto trades.
//  @termsOfService  https://github.com/guttosm/p2pulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/p2pulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        dashboard
//  @tag.description Profit summaries, rankings and daily series
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/p2pulse/config"
	_ "github.com/guttosm/p2pulse/docs" // swagger docs
	"github.com/guttosm/p2pulse/internal/app"
	"github.com/guttosm/p2pulse/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for ctx to be cancelled, then shuts the server down
// and releases resources.
//
// Parameters:
//   - ctx (context.Context): Cancelled on SIGINT/SIGTERM.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) error {
	<-ctx.Done()
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	cleanup()
	if err != nil {
		return err
	}
	logger.L().Info().Msg("server exited gracefully")
	return nil
}

// serve loads the first snapshot, starts the HTTP server and keeps the
// snapshot fresh until ctx is cancelled.
func serve(ctx context.Context, a *app.App, port string, cleanup func()) error {
	if err := a.Refresher.RefreshNow(ctx); err != nil {
		logger.L().Warn().Err(err).Msg("initial load failed, serving fallback data")
	}

	server := startServer(a.Router, port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Refresher.Run(gctx) })
	g.Go(func() error { return gracefulShutdown(gctx, server, cleanup) })
	return g.Wait()
}

// main is the entry point of the p2pulse application.
//
// Modes (selected via --mode flag):
//   - serve:  Loads the trades, keeps them fresh and exposes the dashboard API.
//   - report: Loads the trades once and prints the dashboard to stdout.
//
// Flags:
//   - --mode: Execution mode ("serve" or "report"). Default: "serve".
//   - --port: Port for serve mode. Defaults to value from config (SERVER_PORT).
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	mode := flag.String("mode", "serve", "Mode: serve or report")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for serve mode")
	flag.Parse()

	// stdout belongs to the report in report mode
	if *mode == "report" {
		logger.InitWithWriter(os.Stderr, config.AppConfig.Log.Level, config.AppConfig.Log.Pretty)
	} else {
		logger.Init(config.AppConfig.Log.Level, config.AppConfig.Log.Pretty)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := app.InitializeApp()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("app init error")
	}

	switch *mode {
	case "serve":
		logger.L().Info().Msg("starting API server")
		if err := serve(ctx, a, *port, cleanup); err != nil {
			logger.L().Fatal().Err(err).Msg("server stopped with error")
		}

	case "report":
		err := a.Report(ctx, os.Stdout)
		cleanup()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("report failed")
		}

	default:
		cleanup()
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
