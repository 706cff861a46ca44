package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/migrate"

	"github.com/ruby-gems/metka/builder/store/database/migrations"
)

type DatabaseDialect string

const (
	DialectPostgres DatabaseDialect = "pg"
)

type DBConfig struct {
	Dialect DatabaseDialect
	DSN     string
}

type Operator struct {
	Core *bun.DB
}

type DB struct {
	Operator
	BunDB *bun.DB
}

func (db *DB) Close() error {
	return db.BunDB.Close()
}

var defaultDB *DB

// Init sets the package-level database used by the parameterless store
// constructors.
func Init(db *DB) {
	defaultDB = db
}

func GetDB() *DB {
	return defaultDB
}

// NewDB connects to the configured database. Tag search relies on
// Postgres array operators and UNNEST, so pg is the only dialect.
func NewDB(ctx context.Context, config DBConfig) (*DB, error) {
	var bunDB *bun.DB
	switch config.Dialect {
	case DialectPostgres:
		sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(config.DSN)))
		bunDB = bun.NewDB(sqlDB, pgdialect.New(), bun.WithDiscardUnknownColumns())
	default:
		return nil, fmt.Errorf("unknown database dialect %q", config.Dialect)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err := bunDB.PingContext(pingCtx)
	if err != nil {
		return nil, fmt.Errorf("pinging %s database: %w", config.Dialect, err)
	}

	bunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),

		// DB_DEBUG=1 logs failed queries
		// DB_DEBUG=2 logs all queries
		bundebug.FromEnv("DB_DEBUG"),
	))

	return &DB{
		Operator: Operator{Core: bunDB},
		BunDB:    bunDB,
	}, nil
}

func NewMigrator(db *DB) *migrate.Migrator {
	return migrate.NewMigrator(db.BunDB, migrations.Migrations)
}

type times struct {
	CreatedAt time.Time `bun:",nullzero,notnull,skipupdate,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
