package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"resto/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	driverName                = "postgres"
)

var ErrNotConnected = errors.New("could not connect to database")

// Connection splits reads from writes so a replica can serve list queries.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

// New opens both pools. The returned cleanup closes them.
func New(cfg *config.Config) (*Connection, func(), error) {
	pg := cfg.DB.Postgres

	write, err := connect(endpoint{
		name:     "write",
		username: pg.Write.Username,
		password: pg.Write.Password,
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		dbName:   dbName(cfg, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
	}, pg.MaxRetry, pg.RetryWaitTime)
	if err != nil {
		return nil, nil, err
	}

	read, err := connect(endpoint{
		name:     "read",
		username: pg.Read.Username,
		password: pg.Read.Password,
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		dbName:   dbName(cfg, pg.Read.Name),
		sslMode:  pg.Read.SSLMode,
	}, pg.MaxRetry, pg.RetryWaitTime)
	if err != nil {
		_ = write.Close()

		return nil, nil, err
	}

	conn := &Connection{Read: read, Write: write}

	return conn, conn.Close, nil
}

// Close releases both pools.
func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}

// DSN renders the connection URL used by both the pools and the migrator.
func DSN(username, password, host, port, name, sslMode string) string {
	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=" + sslMode,
	}

	return dsn.String()
}

// WriteDSN is the primary database URL with prefix applied.
func WriteDSN(cfg *config.Config) string {
	w := cfg.DB.Postgres.Write

	return DSN(w.Username, w.Password, w.Host, w.Port, dbName(cfg, w.Name), w.SSLMode)
}

func dbName(cfg *config.Config, baseName string) string {
	if cfg.DB.Postgres.Prefix != "" {
		return cfg.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func connect(ep endpoint, maxRetry, waitTime int) (*sqlx.DB, error) {
	descriptor := DSN(ep.username, ep.password, ep.host, ep.port, ep.dbName, ep.sslMode)
	maxRetry = max(maxRetry, 1)

	var lastErr error

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect(driverName, descriptor)
		if err == nil {
			log.
				Info().
				Str("name", ep.name).
				Str("host", ep.host).
				Str("port", ep.port).
				Str("dbName", ep.dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", ep.name).
			Str("host", ep.host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("%w (%s): %w", ErrNotConnected, ep.name, lastErr)
}
