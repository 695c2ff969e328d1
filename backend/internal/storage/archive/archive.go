// Package archive reads the forum archive from PostgreSQL or an SQLite file.
//
// The store is read-only. Every listing builds its candidate set with the same
// visibility predicate (see visibility.go) and returns it fully ordered;
// slicing into pages happens above this layer.
//
// Queries are written with "?" placeholders and rebound for the driver in use,
// so one query text serves both engines.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/vault/shared/config"
	"github.com/itchan-dev/vault/shared/logger"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSqlite, sqlx.QUESTION)
}

type Storage struct {
	db      *sqlx.DB
	dialect dialect
}

// ConnectionConfig holds database connection pool settings.
// Requests wait for a free connection; there is no acquire timeout.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func New(cfg *config.Config) (*Storage, error) {
	sc := cfg.Public.Storage
	var dsn string
	switch sc.Driver {
	case DriverPostgres:
		pg := cfg.Private.Pg
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			pg.Host, pg.Port, pg.User, pg.Password, pg.Dbname)
	case DriverSqlite:
		dsn = sqliteDSN(sc.SqlitePath)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", sc.Driver)
	}

	logger.Log.Info("connecting to archive", "driver", sc.Driver)
	db, err := Connect(sc.Driver, dsn, ConnectionConfig{
		MaxOpenConns:    sc.MaxOpenConns,
		MaxIdleConns:    sc.MaxIdleConns,
		ConnMaxLifetime: sc.ConnMaxLifetime,
		ConnMaxIdleTime: sc.ConnMaxIdleTime,
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to archive", "driver", sc.Driver)
	return NewWithDB(db), nil
}

// Connect opens the pool and verifies it with a ping.
func Connect(driver, dsn string, connCfg ConnectionConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(connCfg.MaxOpenConns)
	db.SetMaxIdleConns(connCfg.MaxIdleConns)
	db.SetConnMaxLifetime(connCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connCfg.ConnMaxIdleTime)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func NewWithDB(db *sqlx.DB) *Storage {
	return &Storage{db: db, dialect: dialectFor(db.DriverName())}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// selectAll runs a "?" query, expanding slice arguments into IN lists.
func (s *Storage) selectAll(ctx context.Context, name string, dest any, q string, args ...any) error {
	defer observeQuery(name)()

	expanded, expandedArgs, err := sqlx.In(q, args...)
	if err != nil {
		return fmt.Errorf("failed to build %s query: %w", name, err)
	}
	if err := s.db.SelectContext(ctx, dest, s.db.Rebind(expanded), expandedArgs...); err != nil {
		return fmt.Errorf("failed to run %s query: %w", name, err)
	}
	return nil
}

// getOne is selectAll for a single row; sql.ErrNoRows is returned unwrapped.
func (s *Storage) getOne(ctx context.Context, name string, dest any, q string, args ...any) error {
	defer observeQuery(name)()

	err := s.db.GetContext(ctx, dest, s.db.Rebind(q), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to run %s query: %w", name, err)
	}
	return nil
}

// dbTime scans timestamps from either driver. PostgreSQL hands out time.Time;
// SQLite hands out text whenever the column type is lost (aggregates, CTEs, unions).
type dbTime struct {
	time.Time
}

// textTimeLayouts are the ISO-8601 forms SQLite's date functions also read,
// so a row that scans is a row the visibility predicate could compare.
// Text without an offset is UTC, as it is for SQLite.
var textTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		return fmt.Errorf("unexpected NULL timestamp")
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range textTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
