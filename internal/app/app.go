// Package app wires the catalog bot: storage, handlers, paginator routing
// and the middleware chain.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/tgpaginator/core/bootstrap"
	"github.com/m3rciful/tgpaginator/core/logger"
	tg "github.com/m3rciful/tgpaginator/core/telegram"
	"github.com/m3rciful/tgpaginator/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/tgpaginator/core/telegram/helpers"
	"github.com/m3rciful/tgpaginator/core/telegram/paginator"
	"github.com/m3rciful/tgpaginator/core/telegram/router"
	"github.com/m3rciful/tgpaginator/internal/catalog"

	tele "gopkg.in/telebot.v4"
)

const (
	unknownText     = "Unknown command. Try /products or /catalog."
	staleButtonText = "This button no longer works"
)

// App holds the long-lived components of the bot.
type App struct {
	cfg   *Config
	infra *bootstrap.Result
	store catalog.Store
	pages *paginator.Registry
}

// New assembles an App around an already opened store. infra may be nil.
func New(cfg *Config, store catalog.Store, infra *bootstrap.Result) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config provided")
	}
	if store == nil {
		return nil, errors.New("app: nil store provided")
	}
	return &App{
		cfg:   cfg,
		infra: infra,
		store: store,
		pages: paginator.NewRegistryFromConfig(cfg.Paginator),
	}, nil
}

// Bootstrap runs the shared bootstrap pipeline and picks the catalog store:
// Postgres when a database is configured, the built-in catalog otherwise.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	return bootstrapWith(ctx, cfg, bootstrap.Options{})
}

func bootstrapWith(ctx context.Context, cfg *Config, opts bootstrap.Options) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config provided")
	}
	opts.Config = &cfg.Config
	opts.Database = cfg.Database
	opts.Modules = bootstrap.Modules{Seeders: []bootstrap.Seeder{catalog.Seeder()}}

	infra, err := bootstrap.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	var store catalog.Store
	if infra.DB != nil {
		store = catalog.NewPostgresStore(infra.DB)
		logger.Info(ctx, "service.catalog", "store", slog.String("kind", "postgres"))
	} else {
		store = catalog.NewDefaultMemoryStore()
		logger.Info(ctx, "service.catalog", "store", slog.String("kind", "memory"))
	}

	a, err := New(cfg, store, infra)
	if err != nil {
		return nil, errors.Join(err, infra.Close())
	}
	return a, nil
}

// Pages returns the paginator registry shared by all handlers.
func (a *App) Pages() *paginator.Registry { return a.pages }

// TelegramRunOptions builds the registry, routes and middlewares for RunTelegram.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()

	handlers := catalog.NewHandlers(a.store, a.pages, paginator.SettingsFromConfig(a.cfg.Paginator))
	if err := handlers.Register(reg); err != nil {
		return tg.RunOptions{}, fmt.Errorf("app: catalog handlers: %w", err)
	}
	pageRouter := paginator.NewRouter(a.pages)
	if err := pageRouter.Bind(reg, paginator.HandlerOptions{ExpiredText: a.cfg.Paginator.ExpiredText}); err != nil {
		return tg.RunOptions{}, fmt.Errorf("app: paginator routes: %w", err)
	}

	reg.SetCallbackNotFound(func(c tele.Context) error {
		return callbacks.Answer(c, &tele.CallbackResponse{Text: staleButtonText})
	})

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{AdminID: a.cfg.Telegram.AdminID})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{
		UnknownText: func(c tele.Context) error { return tghelpers.SendText(c, unknownText) },
	})...)

	return tg.RunOptions{
		Config:      &a.cfg.Config,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(&a.cfg.Config, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ tg.Runtime) error {
			logger.Info(ctx, "tg.wire", "routes",
				slog.Int("commands", len(reg.Commands())),
				slog.Int("callbacks", len(reg.ListCallbacks())),
			)
			return nil
		},
		OnStop: func(ctx context.Context, _ tg.Runtime) error {
			logger.Info(ctx, "paginator", "registry.shutdown",
				slog.Int("live", a.pages.Len()),
				slog.Int64("evicted", a.pages.Evicted()),
			)
			return nil
		},
	}, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.infra.Close()
}
