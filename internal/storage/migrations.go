package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS leads (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					company TEXT NOT NULL,
					email TEXT NOT NULL,
					phone TEXT,
					status TEXT NOT NULL,
					source TEXT NOT NULL,
					tags TEXT,
					owner TEXT,
					last_contact DATETIME NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_leads_status ON leads(status)`,
				`CREATE INDEX idx_leads_source ON leads(source)`,
				`CREATE INDEX idx_leads_last_contact ON leads(last_contact)`,

				`CREATE TABLE IF NOT EXISTS activities (
					id TEXT PRIMARY KEY,
					lead_id TEXT NOT NULL,
					type TEXT NOT NULL,
					content TEXT NOT NULL,
					timestamp DATETIME NOT NULL,
					user_name TEXT,
					FOREIGN KEY (lead_id) REFERENCES leads(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_activities_lead_id ON activities(lead_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add tasks",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS tasks (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					due_date DATETIME NOT NULL,
					completed INTEGER DEFAULT 0,
					assigned_to TEXT,
					related_lead_id TEXT,
					related_lead_name TEXT,
					priority TEXT NOT NULL DEFAULT 'medium'
				)`,
				`CREATE INDEX idx_tasks_due_date ON tasks(due_date)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add email templates",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS email_templates (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					subject TEXT NOT NULL,
					body TEXT NOT NULL,
					last_modified DATETIME NOT NULL
				)
			`)
			return err
		},
	},
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}

		// PRAGMA does not support placeholders.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Info("applied migration", "version", m.Version, "description", m.Description)
	}

	return nil
}
