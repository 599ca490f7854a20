package database

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alloylab/config"
	"github.com/alloylab/models"
)

// DBConnection represents a named database connection
type DBConnection struct {
	DB     *gorm.DB
	Name   string
	Driver string
	log    *zap.Logger
}

// NewDBConnection opens a named connection, used when moving data between databases
func NewDBConnection(name string, cfg config.DatabaseConfig, log *zap.Logger) (*DBConnection, error) {
	if cfg.URL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	log = log.With(zap.String("database", name))
	db, err := Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
	}

	return &DBConnection{DB: db, Name: name, Driver: cfg.Driver, log: log}, nil
}

// Migrate migrates the database schema
func (c *DBConnection) Migrate() error {
	c.log.Info("Migrating database schema")
	if err := AutoMigrate(c.DB); err != nil {
		return fmt.Errorf("failed to migrate %s database: %w", c.Name, err)
	}
	return nil
}

// Close releases the underlying pool
func (c *DBConnection) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CopyData copies users, experiments and compositions from source to target
// in a single target transaction. Primary keys are preserved so references
// stay valid.
func CopyData(source, target *DBConnection) error {
	log := target.log
	log.Info("Starting data copy", zap.String("source", source.Name))

	var users []models.User
	if err := source.DB.Order("id").Find(&users).Error; err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	var experiments []models.Experiment
	if err := source.DB.Order("id").Find(&experiments).Error; err != nil {
		return fmt.Errorf("failed to fetch experiments: %w", err)
	}

	var compositions []models.Composition
	if err := source.DB.Order("id").Find(&compositions).Error; err != nil {
		return fmt.Errorf("failed to fetch compositions: %w", err)
	}

	err := target.DB.Transaction(func(tx *gorm.DB) error {
		if len(users) > 0 {
			if err := tx.Create(&users).Error; err != nil {
				return fmt.Errorf("failed to copy users: %w", err)
			}
		}
		if len(experiments) > 0 {
			if err := tx.Omit("ConductedBy", "Compositions").Create(&experiments).Error; err != nil {
				return fmt.Errorf("failed to copy experiments: %w", err)
			}
		}
		if len(compositions) > 0 {
			if err := tx.Create(&compositions).Error; err != nil {
				return fmt.Errorf("failed to copy compositions: %w", err)
			}
		}
		if target.Driver == config.DriverPostgres {
			return resetSequences(tx)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Data copy completed",
		zap.Int("users", len(users)),
		zap.Int("experiments", len(experiments)),
		zap.Int("compositions", len(compositions)),
	)
	return nil
}

// resetSequences moves postgres id sequences past the copied primary keys
func resetSequences(tx *gorm.DB) error {
	for _, table := range []string{"users", "experiments", "compositions"} {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s",
			table, table,
		)
		if err := tx.Exec(query).Error; err != nil {
			return fmt.Errorf("failed to reset %s sequence: %w", table, err)
		}
	}
	return nil
}
