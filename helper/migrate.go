package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"resto/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const sourceURL = "file://migrations/postgres"

func databaseName(cfg *config.Config) string {
	return cfg.DB.Postgres.Prefix + cfg.DB.Postgres.Write.Name
}

func databaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if cfg.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	target := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + databaseName(cfg),
		RawQuery: query.Encode(),
	}

	return target.String()
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(sourceURL, databaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// run applies step to a fresh migrate instance. ErrNoChange counts as success.
func run(cfg *config.Config, action string, step func(*migrate.Migrate) error) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading schema version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return run(cfg, "up", (*migrate.Migrate).Up)
}

func StepUp(cfg *config.Config) error {
	return run(cfg, "step-up", func(m *migrate.Migrate) error { return m.Steps(1) })
}

func Down(cfg *config.Config) error {
	return run(cfg, "down", func(m *migrate.Migrate) error { return m.Steps(-1) })
}

// Drop rolls back every migration, leaving an empty schema.
func Drop(cfg *config.Config) error {
	return run(cfg, "drop", (*migrate.Migrate).Down)
}

// Force marks version as applied and clears the dirty flag after a failed migration was fixed by hand.
func Force(cfg *config.Config, version int) error {
	return run(cfg, "force", func(m *migrate.Migrate) error { return m.Force(version) })
}

// Version only reports the current schema version.
func Version(cfg *config.Config) error {
	return run(cfg, "version", func(*migrate.Migrate) error { return nil })
}
