package models

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DatabaseConfig holds the connection settings for PostgreSQL.
type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Database bundles the gorm handle used for writes with an sqlx handle over
// the same connection pool used for the join reads.
type Database struct {
	Gorm *gorm.DB
	SQLX *sqlx.DB
}

// OpenDatabase connects to PostgreSQL and verifies the connection.
func OpenDatabase(ctx context.Context, cfg DatabaseConfig, log *zap.Logger) (*Database, error) {
	const op = "models.OpenDatabase"

	gormLog := gormlogger.New(
		zap.NewStdLog(log.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	return &Database{
		Gorm: db,
		SQLX: sqlx.NewDb(sqlDB, "pgx"),
	}, nil
}

// Ping reports whether the database answers.
func (d *Database) Ping(ctx context.Context) error {
	return d.SQLX.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.SQLX.Close()
}

// Repositories bundles every postgres repository over one Database so the
// HTTP layer can take a single store value.
type Repositories struct {
	*ProductTypesRepository
	*ProductsRepository
	*VariantsRepository
	*AddOnsRepository
	db *Database
}

func NewRepositories(db *Database) *Repositories {
	return &Repositories{
		ProductTypesRepository: NewProductTypesRepository(db.Gorm),
		ProductsRepository:     NewProductsRepository(db.Gorm, db.SQLX),
		VariantsRepository:     NewVariantsRepository(db.Gorm),
		AddOnsRepository:       NewAddOnsRepository(db.Gorm),
		db:                     db,
	}
}

func (r *Repositories) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
