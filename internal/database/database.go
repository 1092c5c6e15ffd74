package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookcourier/internal/config"
	"github.com/mrlokans/bookcourier/internal/entities"
)

var (
	ErrConnectivity  = errors.New("cannot establish connection to database")
	ErrPrecondition  = errors.New("task is not in the required state")
	ErrCommitFailure = errors.New("unit of work could not be committed")
	ErrUnknownDriver = errors.New("unknown database driver")
)

const (
	defaultOpTimeout  = 10 * time.Second
	defaultBusyMillis = 5000
)

// Connector opens a fresh connection for every query or unit of work and
// closes it again before returning. Nothing is pooled across calls.
type Connector struct {
	dialect  func() gorm.Dialector
	timeout  time.Duration
	logLevel logger.LogLevel
	target   string
}

// NewConnector validates the database settings and returns a connector.
// No connection is opened until the first call.
func NewConnector(cfg config.Database) (*Connector, error) {
	c := &Connector{
		timeout:  cfg.Timeout,
		logLevel: logger.Warn,
	}
	if c.timeout <= 0 {
		c.timeout = defaultOpTimeout
	}
	if cfg.Verbose {
		c.logLevel = logger.Info
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		dsn := sqliteDSN(cfg.Name)
		c.dialect = func() gorm.Dialector { return sqlite.Open(dsn) }
		c.target = "sqlite:" + cfg.Name
	case config.DriverPostgres, "":
		dsn := postgresDSN(cfg, c.timeout)
		c.dialect = func() gorm.Dialector { return postgres.Open(dsn) }
		c.target = fmt.Sprintf("postgres://%s:%d/%s", cfg.Hostname, cfg.Port, cfg.Name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	return c, nil
}

// Silence turns off gorm statement logging (tests, CLI tools).
func (c *Connector) Silence() *Connector {
	c.logLevel = logger.Silent
	return c
}

// Target describes the configured database without credentials.
func (c *Connector) Target() string {
	return c.target
}

func (c *Connector) open() (*gorm.DB, error) {
	db, err := gorm.Open(c.dialect(), &gorm.Config{
		Logger: logger.Default.LogMode(c.logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("[database] close: %v", err)
	}
}

// Do opens a connection, runs fn with it and closes the connection on every
// exit path, including a panic in fn. The whole call is bounded by the
// configured timeout.
func (c *Connector) Do(ctx context.Context, fn func(db *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	db, err := c.open()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := fn(db.WithContext(ctx)); err != nil {
		if IsConnectionError(err) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrConnectivity, err)
		}
		return err
	}
	return nil
}

// Transact runs fn as a single unit of work. An error from fn rolls the
// transaction back and is returned as is; a failed commit is rolled back
// and reported as ErrCommitFailure. Once begun, the unit of work is not
// cancelled by the caller's context, only bounded by the timeout.
func (c *Connector) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return c.Do(context.WithoutCancel(ctx), func(db *gorm.DB) error {
		tx := db.Begin()
		if tx.Error != nil {
			return fmt.Errorf("%w: begin: %v", ErrConnectivity, tx.Error)
		}

		if err := fn(tx); err != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				log.Printf("[database] rollback after %v: %v", err, rbErr)
			}
			return err
		}

		if err := tx.Commit().Error; err != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, gorm.ErrInvalidTransaction) && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Printf("[database] rollback after failed commit: %v", rbErr)
			}
			return fmt.Errorf("%w: %v", ErrCommitFailure, err)
		}
		return nil
	})
}

// Migrate creates or updates every table the desk uses.
func (c *Connector) Migrate(ctx context.Context) error {
	return c.Do(ctx, func(db *gorm.DB) error {
		err := db.AutoMigrate(
			&entities.Courier{},
			&entities.Customer{},
			&entities.Book{},
			&entities.BookToReceive{},
			&entities.BookToDeliver{},
			&entities.Receiving{},
			&entities.Delivery{},
			&entities.AuditEvent{},
		)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		return nil
	})
}

// Ping opens and closes a connection, reporting whether the database is reachable.
func (c *Connector) Ping(ctx context.Context) error {
	return c.Do(ctx, func(db *gorm.DB) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(db.Statement.Context)
	})
}

// sqliteDSN takes the write lock when a transaction begins so concurrent
// units of work queue on the busy timeout instead of failing on upgrade.
func sqliteDSN(path string) string {
	if path == "" {
		path = "bookstore.db"
	}
	if strings.Contains(path, "?") || strings.HasPrefix(path, ":memory:") {
		return path
	}
	return fmt.Sprintf("%s?_busy_timeout=%d&_txlock=immediate", path, defaultBusyMillis)
}

func postgresDSN(cfg config.Database, timeout time.Duration) string {
	parts := []string{"sslmode=disable"}
	add := func(key, value string) {
		if value == "" {
			return
		}
		parts = append(parts, key+"="+quoteDSNValue(value))
	}
	add("host", cfg.Hostname)
	if cfg.Port > 0 {
		add("port", fmt.Sprint(cfg.Port))
	}
	add("dbname", cfg.Name)
	add("user", cfg.User)
	add("password", cfg.Password)
	if secs := int(timeout.Seconds()); secs > 0 {
		add("connect_timeout", fmt.Sprint(secs))
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
