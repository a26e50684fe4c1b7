// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/SatoruFF/npack/internal/modload"
	"github.com/SatoruFF/npack/internal/snapshot"

	// Client side of the migration contract is bound to SQLite.
	_ "github.com/mattn/go-sqlite3"
)

const defaultTable = "npack_migrations"

// Config configures a migration client.
type Config struct {
	// DSN is the SQLite data source name.
	DSN string

	// Directory is the migration directory the application names in its
	// configuration. If it virtualizes against Store, the reference is
	// replaced with a store-backed source.
	Directory string

	// Table overrides the bookkeeping table name.
	Table string

	// Source overrides source selection entirely when non-nil.
	Source Source

	// Store and Loader provide the packaged migration scripts.
	Store  *snapshot.Store
	Loader *modload.Loader
}

// Client applies and rolls back schema migrations, one transaction per
// migration, recording applied identifiers in a bookkeeping table.
type Client struct {
	db     *sql.DB
	source Source
	table  string
}

// NewClient opens the database and selects the migration source.
//
// Source selection observes the configuration: an explicit Source wins; a
// Directory that virtualizes against the store is replaced with a
// [StoreSource]; anything else reads from the real directory.
func NewClient(cfg Config) (*Client, error) {
	source := cfg.Source

	if source == nil {
		var err error

		if cfg.Store != nil && Virtualizes(cfg.Store, cfg.Directory) {
			slog.Debug("Migration directory is virtualized, using embedded scripts",
				slog.String("directory", cfg.Directory))

			source, err = NewStoreSource(cfg.Store, cfg.Loader)
		} else {
			source, err = NewDirSource(cfg.Directory)
		}

		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	table := cfg.Table
	if table == "" {
		table = defaultTable
	}

	return &Client{
		db:     db,
		source: source,
		table:  table,
	}, nil
}

// Close closes the database connection.
func (c *Client) Close() error {
	return c.db.Close() //nolint:wrapcheck
}

// Applied returns the identifiers of applied migrations in apply order.
func (c *Client) Applied(ctx context.Context) ([]string, error) {
	if err := c.ensureTable(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id FROM %s ORDER BY rowid", c.table)

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	var applied []string

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}

		applied = append(applied, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}

	return applied, nil
}

// Up applies all pending migrations in ascending identifier order. It
// returns the identifiers it applied.
func (c *Client) Up(ctx context.Context) ([]string, error) {
	if err := c.ensureTable(ctx); err != nil {
		return nil, err
	}

	appliedList, err := c.Applied(ctx)
	if err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(appliedList))
	for _, id := range appliedList {
		applied[id] = true
	}

	available, err := c.source.Migrations()
	if err != nil {
		return nil, fmt.Errorf("enumerate migrations: %w", err)
	}

	var ran []string

	for _, id := range available {
		if applied[id] {
			continue
		}

		migration, err := c.source.Fetch(id)
		if err != nil {
			return ran, err
		}

		err = c.inTx(ctx, func(tx *sql.Tx) error {
			if err := migration.Up(tx); err != nil {
				return err
			}

			insert := fmt.Sprintf("INSERT INTO %s (id) VALUES (?)", c.table)
			_, err := tx.ExecContext(ctx, insert, id)

			return err
		})
		if err != nil {
			return ran, fmt.Errorf("apply %s: %w", c.source.Name(id), err)
		}

		slog.Info("Applied migration", slog.String("id", c.source.Name(id)))

		ran = append(ran, id)
	}

	return ran, nil
}

// Down rolls back the most recently applied migration.
func (c *Client) Down(ctx context.Context) (string, error) {
	applied, err := c.Applied(ctx)
	if err != nil {
		return "", err
	}

	if len(applied) == 0 {
		return "", ErrNoMigrations
	}

	id := applied[len(applied)-1]

	migration, err := c.source.Fetch(id)
	if err != nil {
		return "", err
	}

	if migration.Down == nil {
		return "", fmt.Errorf("%w: %s exports no Down", ErrMissingProcedure, id)
	}

	err = c.inTx(ctx, func(tx *sql.Tx) error {
		if err := migration.Down(tx); err != nil {
			return err
		}

		remove := fmt.Sprintf("DELETE FROM %s WHERE id = ?", c.table)
		_, err := tx.ExecContext(ctx, remove, id)

		return err
	})
	if err != nil {
		return "", fmt.Errorf("roll back %s: %w", id, err)
	}

	slog.Info("Rolled back migration", slog.String("id", id))

	return id, nil
}

func (c *Client) ensureTable(ctx context.Context) error {
	create := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)",
		c.table)

	if _, err := c.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	return nil
}

func (c *Client) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
