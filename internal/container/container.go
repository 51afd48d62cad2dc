package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"proplens/adapters/excel"
	"proplens/adapters/postgres"
	"proplens/app"
	"proplens/domain/portfolio"
	"proplens/internal"
	"proplens/internal/config"
	"proplens/internal/migration"
	"proplens/ports"
)

// Container holds the application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure; DB and PropertyRepo are nil when no database is
	// configured and the app runs on generated demo data
	DB           *sqlx.DB
	PropertyRepo ports.PropertyRepository

	Dashboard *app.DashboardService
	Exporter  *excel.Exporter
}

// New creates the dependency container and initializes every component
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.DefaultLogger,
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	c.initServices()
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	if c.Config.Database.URL == "" {
		return nil
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	c.Logger.Info("[container] database ready, migrations at %s", runner.Version())

	c.DB = db
	c.PropertyRepo = postgres.NewPropertyRepository(db)
	return nil
}

func (c *Container) initServices() {
	bands := portfolio.PriceBands{
		Low:  c.Config.Analytics.PriceBandLow,
		Mid:  c.Config.Analytics.PriceBandMid,
		High: c.Config.Analytics.PriceBandHigh,
	}
	c.Dashboard = app.NewDashboardService(bands, c.Config.Analytics.BatchWorkers, c.Logger)
	c.Exporter = excel.NewExporter()
}

// Close releases held resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
