package db // import "github.com/bookgrove/bookgrove/store/db"

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/bookgrove/bookgrove/config"
	"github.com/bookgrove/bookgrove/store"
	"github.com/bookgrove/bookgrove/version"
)

type DB struct {
	*sql.DB
}

func NewDB() (*DB, error) {
	if config.Opts.DSN == "" {
		return nil, errors.New("Database path is required")
	}

	d, err := sql.Open("sqlite", config.Opts.DSN)
	if err != nil {
		return nil, err
	}
	// Review rows are removed through their book's cascade.
	if _, err := d.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	return &DB{d}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

//go:embed seed
var seedFS embed.FS

const (
	latestSchemaFileName = "LATEST_SCHEMA.sql"
	latestSeedFileName   = "LATEST_SEED.sql"
)

// Migrate applies the latest schema to the database. A fresh database gets
// the full schema plus the seed data; an existing one is walked through
// the minor version migrations since its recorded version.
func (d *DB) Migrate(ctx context.Context) error {
	currentVersion := version.GetCurrentVersion()
	// Opening the database already creates the file, so freshness is
	// decided by the schema, not by the file's existence.
	fresh, err := d.isFresh(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database schema")
	}
	if fresh {
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if err := d.applySeed(ctx); err != nil {
			return errors.Wrap(err, "failed to apply seed")
		}
		if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
			Version: currentVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	// If db file exists, check whether a migration is needed
	migrationHistoryList, err := d.FindMigrationHistoryList(ctx, &store.FindMigrationHistory{})
	if err != nil {
		return errors.Wrap(err, "failed to find migration history list")
	}

	if len(migrationHistoryList) == 0 {
		_, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
			Version: currentVersion,
		})
		return err
	}

	migrationHistoryVersionList := []string{}
	for _, migrationHistory := range migrationHistoryList {
		migrationHistoryVersionList = append(migrationHistoryVersionList, migrationHistory.Version)
	}
	version.SortVersion(migrationHistoryVersionList)
	latestMigrationHistoryVersion := migrationHistoryVersionList[len(migrationHistoryVersionList)-1]

	if !version.IsVersionGreaterThan(version.GetSchemaVersion(currentVersion), latestMigrationHistoryVersion) {
		return nil
	}

	minorVersionList, err := getMinorVersionList()
	if err != nil {
		return err
	}
	// Backup the raw database file before migration
	rawBytes, err := os.ReadFile(config.Opts.DSN)
	if err != nil {
		return errors.Wrap(err, "failed to read raw database file")
	}
	backupDBFilePath := fmt.Sprintf("%s/bookgrove_%s_%d_backup.db", config.Opts.Data, currentVersion, time.Now().Unix())
	if err := os.WriteFile(backupDBFilePath, rawBytes, 0644); err != nil {
		return errors.Wrap(err, "failed to write backup database file")
	}

	for _, minorVersion := range minorVersionList {
		// Patch releases never change the schema
		normalizedVersion := minorVersion + ".0"
		if version.IsVersionGreaterThan(normalizedVersion, latestMigrationHistoryVersion) && version.IsVersionGreaterOrEqualThan(currentVersion, normalizedVersion) {
			if err := d.applyMigrationForMinorVersion(ctx, minorVersion); err != nil {
				return errors.Wrap(err, "failed to apply minor version migration")
			}
		}
	}

	// Remove the created backup db file after migrate succeed.
	if err := os.Remove(backupDBFilePath); err != nil {
		fmt.Printf("Failed to remove temp database file, err: %v", err)
	}
	return nil
}

func (d *DB) isFresh(ctx context.Context) (bool, error) {
	stmt := "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'migration_history'"
	var count int
	if err := d.DB.QueryRowContext(ctx, stmt).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	latestSchemaPath := fmt.Sprintf("migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := d.execute(ctx, stmt); err != nil {
		return errors.Wrapf(err, "failed to apply latest schema: %s", stmt)
	}
	return nil
}

func (d *DB) applySeed(ctx context.Context) error {
	seedPath := fmt.Sprintf("seed/%s", latestSeedFileName)
	buf, err := seedFS.ReadFile(seedPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read seed file: %q", seedPath)
	}

	stmt := string(buf)
	if err := d.execute(ctx, stmt); err != nil {
		return errors.Wrapf(err, "failed to apply seed: %s", stmt)
	}
	return nil
}

func (d *DB) applyMigrationForMinorVersion(ctx context.Context, minorVersion string) error {
	filenames, err := fs.Glob(migrationFS, fmt.Sprintf("migration/%s/*.sql", minorVersion))
	if err != nil {
		return errors.Wrapf(err, "failed to find migration files for version %s", minorVersion)
	}

	// The migration files are applied in name order.
	// 10001_example.sql, 10002_example.sql, ...
	slices.Sort(filenames)

	for _, filename := range filenames {
		buf, err := migrationFS.ReadFile(filename)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration file: %q", filename)
		}
		stmt := string(buf)
		if err := d.execute(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to apply migration: %s", stmt)
		}
	}

	// Upsert the newest version to migration_history.
	version := minorVersion + ".0"
	if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
		Version: version,
	}); err != nil {
		return errors.Wrapf(err, "failed to upsert migration history for version %s", version)
	}
	return nil
}

// getMinorVersionList returns the sorted minor versions that carry
// migration directories.
func getMinorVersionList() ([]string, error) {
	entries, err := migrationFS.ReadDir("migration")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migration directory")
	}
	minorVersionList := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			minorVersionList = append(minorVersionList, entry.Name())
		}
	}
	version.SortVersion(minorVersionList)
	return minorVersionList, nil
}

func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return tx.Commit()
}
