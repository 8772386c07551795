// Package database handles database connections and migrations.
package database

import (
	"fmt"
	"time"

	"murmur/internal/config"
	"murmur/internal/models"
	"murmur/internal/observability"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PersistentModels returns the schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	}
}

// Migrate brings the schema up to date with PersistentModels.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// ConnectOptions tune Connect. AutoMigrate applies PersistentModels on connect.
type ConnectOptions struct {
	AutoMigrate bool
}

// Connect opens the database and auto-migrates outside production. Production
// schemas are applied with cmd/migrate.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return ConnectWithOptions(cfg, ConnectOptions{AutoMigrate: !cfg.IsProduction()})
}

// ConnectWithOptions opens a database connection and configures the pool.
func ConnectWithOptions(cfg *config.Config, opts ConnectOptions) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: NewGormLogger(observability.Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	observability.Logger.Info("Database connected successfully")

	if opts.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		observability.Logger.Info("Database migration completed")
	}

	if err := configurePool(db); err != nil {
		return nil, err
	}
	return db, nil
}

// TableStatus reports whether the table backing a model exists.
type TableStatus struct {
	Table  string
	Exists bool
}

// SchemaStatus lists every PersistentModels table and whether it exists.
func SchemaStatus(db *gorm.DB) ([]TableStatus, error) {
	all := PersistentModels()
	out := make([]TableStatus, 0, len(all))
	for _, m := range all {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", m, err)
		}
		out = append(out, TableStatus{
			Table:  stmt.Schema.Table,
			Exists: db.Migrator().HasTable(m),
		})
	}
	return out, nil
}

// Pending returns the tables SchemaStatus reports as missing.
func Pending(status []TableStatus) []string {
	var missing []string
	for _, st := range status {
		if !st.Exists {
			missing = append(missing, st.Table)
		}
	}
	return missing
}

func configurePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

// Close closes the underlying sql.DB.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
