package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	go_ora "github.com/sijms/go-ora/v2"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"srs-hq/rulediff/pkg/lookup"
)

// Store implements lookup.Lookuper against a relational database.
type Store struct {
	config *Config
	query  string
	pools  *xsync.MapOf[string, *sql.DB]
	logger *slog.Logger
}

// New creates a store. Connections are opened lazily on first use.
func New(config *Config, logger *slog.Logger) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		config: config,
		query:  config.query(),
		pools:  xsync.NewMapOf[string, *sql.DB](),
		logger: logger.With("component", "store", "driver", config.Driver),
	}, nil
}

// Driver returns the configured driver name.
func (s *Store) Driver() string {
	return s.config.Driver
}

// Lookup implements lookup.Lookuper.
func (s *Store) Lookup(ctx context.Context, req lookup.Request) (lookup.Result, error) {
	db, err := s.pool(req.Credentials)
	if err != nil {
		return lookup.Result{}, err
	}

	if s.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.QueryTimeout)
		defer cancel()
	}

	rows, err := db.QueryContext(ctx, s.query, req.Name)
	if err != nil {
		return lookup.Result{}, NewStoreError(s.config.Driver, "query", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return lookup.Result{}, NewStoreError(s.config.Driver, "query", err)
		}
		return lookup.StatusResult(lookup.StatusNotConfigured), nil
	}

	fields, err := scanRow(rows)
	if err != nil {
		return lookup.Result{}, NewStoreError(s.config.Driver, "scan", err)
	}
	return lookup.FieldsResult(fields), nil
}

// Ping verifies the database for creds is reachable.
func (s *Store) Ping(ctx context.Context, creds lookup.Credentials) error {
	db, err := s.pool(creds)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return NewStoreError(s.config.Driver, "ping", err)
	}
	return nil
}

// Close closes every pool.
func (s *Store) Close() error {
	var errs []error
	s.pools.Range(func(dsn string, db *sql.DB) bool {
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
		s.pools.Delete(dsn)
		return true
	})
	if len(errs) > 0 {
		return NewStoreError(s.config.Driver, "close", errors.Join(errs...))
	}
	return nil
}

// pool returns the shared pool for the DSN derived from creds.
func (s *Store) pool(creds lookup.Credentials) (*sql.DB, error) {
	dsn, err := s.dsn(creds)
	if err != nil {
		return nil, NewStoreError(s.config.Driver, "dsn", err)
	}

	if db, ok := s.pools.Load(dsn); ok {
		return db, nil
	}

	db, err := sql.Open(s.config.Driver, dsn)
	if err != nil {
		return nil, NewStoreError(s.config.Driver, "open", err)
	}
	db.SetMaxOpenConns(s.config.MaxOpenConns)
	db.SetMaxIdleConns(s.config.MaxIdleConns)
	db.SetConnMaxLifetime(s.config.ConnMaxLifetime)

	actual, loaded := s.pools.LoadOrStore(dsn, db)
	if loaded {
		db.Close()
		return actual, nil
	}

	s.logger.Info("database pool opened",
		"target", s.target(creds),
		"max_open_conns", s.config.MaxOpenConns,
	)
	return db, nil
}

func (s *Store) dsn(creds lookup.Credentials) (string, error) {
	if s.config.Driver != DriverOracle {
		return s.config.Path, nil
	}
	if err := creds.Validate(); err != nil {
		return "", fmt.Errorf("credentials: %w", err)
	}
	port, err := strconv.Atoi(creds.Port)
	if err != nil {
		return "", fmt.Errorf("port %q: %w", creds.Port, err)
	}
	return go_ora.BuildUrl(creds.Host, port, creds.ServiceName, creds.Username, creds.Password, nil), nil
}

// target names the database in logs without secrets.
func (s *Store) target(creds lookup.Credentials) string {
	if s.config.Driver != DriverOracle {
		return s.config.Path
	}
	return creds.Identity()
}

// scanRow reads the current row into ordered fields.
func scanRow(rows *sql.Rows) ([]lookup.Field, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	fields := make([]lookup.Field, len(columns))
	for i, col := range columns {
		fields[i] = lookup.Field{Key: col, Value: normalize(values[i])}
	}
	return fields, nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
