package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/p2pulse/config"
	"github.com/guttosm/p2pulse/internal/api"
	"github.com/guttosm/p2pulse/internal/loader"
	"github.com/guttosm/p2pulse/internal/logger"
	"github.com/guttosm/p2pulse/internal/refresh"
	"github.com/guttosm/p2pulse/internal/report"
	"github.com/guttosm/p2pulse/internal/service"
	"github.com/guttosm/p2pulse/internal/storage"
)

// App bundles the wired components shared by the serve and report modes.
type App struct {
	Router    *gin.Engine
	Refresher *refresh.Refresher
	Service   service.DashboardService
}

// source is a configured trade source plus what it needs on readiness and shutdown.
type source struct {
	loader.Source
	ping    func(ctx context.Context) error // nil when the source has no connection to check
	cleanup func()
}

// buildSource selects the trade source from cfg.Source.Kind.
func buildSource(cfg config.Config) (*source, error) {
	key := cfg.Source.Key
	switch cfg.Source.Kind {
	case config.SourceFile:
		return &source{Source: loader.NewFileSource(cfg.Source.Path, key), cleanup: func() {}}, nil
	case config.SourceHTTP:
		src := loader.NewHTTPSource(cfg.Source.URL, key, cfg.Source.Timeout, cfg.Source.RateLimit, cfg.Source.RateBurst)
		return &source{Source: src, cleanup: func() {}}, nil
	case config.SourcePostgres:
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		src := loader.NewPostgresSource(storage.NewOperationsRepository(db))
		return &source{Source: src, ping: src.Ping, cleanup: closeDB(db)}, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}

// InitializeApp sets up all application dependencies from config.AppConfig.
//
// Responsibilities:
//   - Builds the trade source (file, http or postgres) and the loader around it.
//   - Creates the snapshot store and the refresher that feeds it.
//   - Creates the dashboard service, HTTP handlers and the Gin router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Nothing is loaded here; callers run Refresher.RefreshNow before serving.
//
// Returns:
//   - *App: the wired components.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*App, func(), error) {
	cfg := config.AppConfig

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid time zone: %w", err)
	}

	src, err := buildSource(cfg)
	if err != nil {
		return nil, nil, err
	}

	store := refresh.NewStore()
	refresher := refresh.NewRefresher(loader.New(src), store, cfg.Refresh.Interval)

	svc := service.NewDashboardService(store, service.Options{
		TopDays:   cfg.Dashboard.TopDays,
		ChartDays: cfg.Dashboard.ChartDays,
		Location:  loc,
	})

	handler := api.NewHandler(svc, cfg.Dashboard.TopDays, cfg.Dashboard.ChartDays)
	router := api.NewRouter(handler, rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)

	api.NewHealthHandler(readiness(store, src.ping)).Register(router)

	lg := logger.For("app")
	lg.Info().Str("source", src.Name()).Msg("application initialized")

	return &App{Router: router, Refresher: refresher, Service: svc}, src.cleanup, nil
}

// readiness is ready once a snapshot exists and the source connection, if any, answers.
func readiness(store *refresh.Store, ping func(ctx context.Context) error) func() error {
	return func() error {
		if _, ok := store.Current(); !ok {
			return service.ErrNoSnapshot
		}
		if ping == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return ping(ctx)
	}
}

// Report loads the trades once and prints the dashboard to w.
// A failed load still prints, with the fallback data and the error in the footer.
func (a *App) Report(ctx context.Context, w io.Writer) error {
	if err := a.Refresher.RefreshNow(ctx); err != nil {
		lg := logger.For("report")
		lg.Warn().Err(err).Msg("rendering with fallback data")
	}

	summary, err := a.Service.Summary(ctx)
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	volumes, err := a.Service.DailyVolumes(ctx)
	if err != nil {
		return fmt.Errorf("daily summary: %w", err)
	}
	return report.Render(w, summary, volumes)
}
