package db

import (
	"context"
	"fmt"
	"time"

	"github.com/monocle-dev/companies/internal/config"
	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
	mongorepo "github.com/monocle-dev/companies/internal/repository/mongo"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Open connects to the configured backend, prepares its schema or indexes
// and returns the Store every service is built from.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*repository.Store, error) {
	if cfg.Driver == DriverMongo {
		return mongorepo.Connect(ctx, cfg.URL, cfg.MongoDatabase)
	}

	gormDB, err := ConnectDatabase(cfg.Driver, cfg.URL)

	if err != nil {
		return nil, err
	}

	if err := MigrateDatabase(gormDB); err != nil {
		return nil, err
	}

	return repository.NewGormStore(gormDB), nil
}

// ConnectDatabase opens a gorm connection for one of the SQL drivers.
func ConnectDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.StandardLogger(), logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	return gormDB, nil
}

func MigrateDatabase(gormDB *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.Company{},
		&models.Review{},
		&models.Accomplishment{},
	}

	migrator := gormDB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := gormDB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
