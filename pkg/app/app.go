// Package app is the composition root. It wires configuration, logging,
// the store and the transports into one Application that the CLI drives:
//
//	a, err := app.Boot(ctx)
//	if err != nil { ... }
//	defer a.Close()
//	return a.Serve(ctx)
package app

import (
	"context"
	"fmt"
	"io"
	"net"

	gqlgo "github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/offerdesk/app/controllers"
	"github.com/shashiranjanraj/offerdesk/app/graphql"
	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/app/repositories"
	"github.com/shashiranjanraj/offerdesk/app/routes"
	"github.com/shashiranjanraj/offerdesk/config"
	"github.com/shashiranjanraj/offerdesk/database/seeders"
	"github.com/shashiranjanraj/offerdesk/internal/kernel"
	"github.com/shashiranjanraj/offerdesk/internal/server"
	"github.com/shashiranjanraj/offerdesk/pkg/cache"
	"github.com/shashiranjanraj/offerdesk/pkg/database"
	"github.com/shashiranjanraj/offerdesk/pkg/event"
	"github.com/shashiranjanraj/offerdesk/pkg/logger"
	"github.com/shashiranjanraj/offerdesk/pkg/migration"
	"github.com/shashiranjanraj/offerdesk/pkg/storage"
	"github.com/shashiranjanraj/offerdesk/pkg/ws"

	// registers the schema migrations
	_ "github.com/shashiranjanraj/offerdesk/database/migrations"
)

// Application holds every long-lived collaborator.
type Application struct {
	DB     *gorm.DB
	Cache  cache.Store
	Disk   storage.Disk
	Events *event.Dispatcher
	Hub    *ws.Hub

	Users  *repositories.Repository[models.User]
	Orders *repositories.Repository[models.Order]
	Offers *repositories.Repository[models.Offer]

	closers []func()
}

// BootDB loads configuration and opens the database and seed disk. It is
// enough for the migrate and seed commands.
func BootDB(ctx context.Context) (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	a := &Application{}

	if uri := config.LogMongoURI(); uri != "" {
		closeLog, err := logger.AttachMongo(uri, config.LogMongoDB(), config.LogMongoCollection())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeLog)
	}

	db, err := database.Connect()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.DB = db
	a.closers = append(a.closers, func() {
		if err := database.Close(db); err != nil {
			logger.Warn("database: close", "error", err)
		}
	})

	disk, err := storage.Open(ctx, config.SeedDisk())
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Disk = disk

	return a, nil
}

// Boot is BootDB plus the cache, repositories and change feed.
func Boot(ctx context.Context) (*Application, error) {
	a, err := BootDB(ctx)
	if err != nil {
		return nil, err
	}

	store, err := cache.New(ctx, config.CacheDriver())
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, func() { store.Close() }) //nolint:errcheck
	a.Wire(store)

	return a, nil
}

// Wire attaches the cache, builds the repositories and connects the change
// feed to the websocket hub. DB must be set.
func (a *Application) Wire(store cache.Store) {
	a.Cache = store

	withCache := repositories.WithCache(store, config.CacheTTL())
	a.Users = repositories.New[models.User](a.DB, withCache)
	a.Orders = repositories.New[models.Order](a.DB, withCache)
	a.Offers = repositories.New[models.Offer](a.DB, withCache)

	a.Events = event.NewDispatcher()
	a.Hub = ws.NewHub(config.CORSOrigins()...)
	a.Events.Listen(event.Changed, func(c event.Change) { a.Hub.Publish(c) })
}

// Migrate applies pending migrations.
func (a *Application) Migrate(out io.Writer) error {
	return a.Migrator(out).Run()
}

// Migrator returns a runner bound to the application database.
func (a *Application) Migrator(out io.Writer) *migration.Runner {
	r := migration.New(a.DB)
	r.Out = out
	return r
}

// SeedSource locates the seed files on the configured disk.
func (a *Application) SeedSource() seeders.Source {
	return seeders.Source{Disk: a.Disk, Dir: config.SeedPath()}
}

// Seed loads the seed files into the store.
func (a *Application) Seed(ctx context.Context, out io.Writer) error {
	return seeders.RunAll(ctx, a.DB, a.SeedSource(), out)
}

// Controllers builds the REST handlers.
func (a *Application) Controllers() routes.Controllers {
	return routes.Controllers{
		Users:  controllers.NewUserController(a.Users, a.Events),
		Orders: controllers.NewOrderController(a.Orders, a.Events),
		Offers: controllers.NewOfferController(a.Offers, a.Events),
	}
}

// Kernel builds the HTTP kernel over the booted collaborators.
func (a *Application) Kernel() (*kernel.HTTPKernel, error) {
	schema, err := a.Schema()
	if err != nil {
		return nil, fmt.Errorf("graphql: %w", err)
	}
	deps := kernel.Deps{
		DB:      a.DB,
		API:     a.Controllers(),
		Schema:  &schema,
		Changes: a.Events,
	}
	if a.Hub != nil {
		deps.Socket = a.Hub
	}
	return kernel.NewHTTPKernel(deps), nil
}

// Prepare migrates, then seeds when SEED_ON_BOOT is set and the store is
// empty. A persistent database that already holds data is left alone.
func (a *Application) Prepare(ctx context.Context, out io.Writer) error {
	if err := a.Migrate(out); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if !config.SeedOnBoot() {
		return nil
	}

	n, err := a.Users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("seed: store already populated, skipping", "users", n)
		return nil
	}
	if err := a.Seed(ctx, out); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// Serve prepares the store and runs the listeners until ctx is done.
func (a *Application) Serve(ctx context.Context, out io.Writer) error {
	if err := a.Prepare(ctx, out); err != nil {
		return err
	}

	k, err := a.Kernel()
	if err != nil {
		return err
	}

	go a.Hub.Run(ctx)

	opts := server.Options{
		Addr:    config.Addr(),
		Handler: k.Handler(),
		Health:  func(ctx context.Context) error { return database.Ping(ctx, a.DB) },
	}
	if port := config.GRPCPort(); port != "" {
		opts.GRPCAddr = net.JoinHostPort(config.AppHost(), port)
	}

	err = server.Run(ctx, opts)
	a.Events.Flush()
	return err
}

// Close releases resources in reverse acquisition order.
func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Schema builds the GraphQL schema over the repositories.
func (a *Application) Schema() (gqlgo.Schema, error) {
	return graphql.NewSchema(graphql.Stores{Users: a.Users, Orders: a.Orders, Offers: a.Offers})
}
