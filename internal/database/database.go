package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/jianjin/internal/config"
	"github.com/mrlokans/jianjin/internal/entities"
)

type Database struct {
	DB     *gorm.DB
	driver config.DatabaseDriver
}

// Open connects to the configured database and migrates the schema.
func Open(cfg config.Database) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db, driver: cfg.Driver}
	if err := database.Migrate(); err != nil {
		return nil, err
	}

	log.Printf("Database initialized successfully (%s)", describe(cfg))

	return database, nil
}

// NewDatabase opens a SQLite database at dbPath.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(config.Database{Driver: config.DriverSQLite, Path: dbPath})
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("database path is required for sqlite")
		}
		return sqlite.Open(cfg.Path + "?_busy_timeout=5000"), nil
	case config.DriverPostgres:
		if cfg.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for postgres")
		}
		return postgres.Open(cfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func describe(cfg config.Database) string {
	if cfg.Driver == config.DriverPostgres {
		return "postgres"
	}
	return "sqlite at " + cfg.Path
}

// Migrate creates or updates all tables, including the custom join tables.
func (d *Database) Migrate() error {
	if err := d.DB.SetupJoinTable(&entities.Word{}, "Tags", &entities.WordTag{}); err != nil {
		return fmt.Errorf("failed to set up word tags join table: %w", err)
	}
	if err := d.DB.SetupJoinTable(&entities.Word{}, "RelatedWords", &entities.WordRelation{}); err != nil {
		return fmt.Errorf("failed to set up related words join table: %w", err)
	}

	err := d.DB.AutoMigrate(
		&entities.User{},
		&entities.Word{},
		&entities.Definition{},
		&entities.ExampleSentence{},
		&entities.Tag{},
		&entities.WordTag{},
		&entities.WordRelation{},
		&entities.ComparisonGroup{},
		&entities.ComparisonExample{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Driver returns the configured database driver.
func (d *Database) Driver() config.DatabaseDriver {
	if d.driver == "" {
		return config.DriverSQLite
	}
	return d.driver
}

// Ping checks database connectivity.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
