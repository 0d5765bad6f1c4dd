package store

import (
	"fmt"
	"regexp"
	"time"
)

// Driver names.
const (
	DriverOracle  = "oracle"
	DriverSQLite  = "sqlite"
	DriverSQLite3 = "sqlite3"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$#]*(\.[A-Za-z_][A-Za-z0-9_$#]*)?$`)

// Config contains configuration for the store.
type Config struct {
	// Driver is one of "oracle", "sqlite" or "sqlite3".
	// Default: "oracle"
	Driver string

	// Path is the database file for the sqlite drivers.
	Path string

	// Table holds one row per rule.
	// Default: "SRS_RULES"
	Table string

	// NameColumn is matched against the rule name.
	// Default: "RULE_NAME"
	NameColumn string

	// MaxOpenConns is the per-database connection limit.
	// Default: 4
	MaxOpenConns int

	// MaxIdleConns is the per-database idle connection limit.
	// Default: 2
	MaxIdleConns int

	// ConnMaxLifetime recycles connections older than this.
	// Default: 30 minutes
	ConnMaxLifetime time.Duration

	// QueryTimeout bounds a single lookup. Zero means no timeout.
	// Default: 10 seconds
	QueryTimeout time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Driver:          DriverOracle,
		Table:           "SRS_RULES",
		NameColumn:      "RULE_NAME",
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		QueryTimeout:    10 * time.Second,
	}
}

// Validate checks the driver and identifiers.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverOracle:
	case DriverSQLite, DriverSQLite3:
		if c.Path == "" {
			return fmt.Errorf("driver %s requires a path", c.Driver)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
	if !identifierPattern.MatchString(c.Table) {
		return fmt.Errorf("%w: table %q", ErrInvalidIdentifier, c.Table)
	}
	if !identifierPattern.MatchString(c.NameColumn) {
		return fmt.Errorf("%w: column %q", ErrInvalidIdentifier, c.NameColumn)
	}
	return nil
}

func (c *Config) placeholder() string {
	if c.Driver == DriverOracle {
		return ":1"
	}
	return "?"
}

func (c *Config) query() string {
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = %s", c.Table, c.NameColumn, c.placeholder())
}
