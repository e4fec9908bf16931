package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

type migration struct {
	Version  int64
	Name     string
	UpPath   string
	DownPath string
}

// UpMigrations applies every pending .up.sql file in version order. Each file
// runs in its own transaction together with the schema_migrations bookkeeping
// row.
func UpMigrations(ctx context.Context, db *sql.DB, dir string) error {
	if err := ensureVersionTable(ctx, db); err != nil {
		return err
	}

	migrations, err := readMigrationDir(dir)
	if err != nil {
		return err
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyOne(ctx, db, m); err != nil {
			return err
		}
	}

	return nil
}

// DownOneMigration rolls back the highest applied version using its .down.sql.
func DownOneMigration(ctx context.Context, db *sql.DB, dir string) error {
	if err := ensureVersionTable(ctx, db); err != nil {
		return err
	}

	migrations, err := readMigrationDir(dir)
	if err != nil {
		return err
	}

	version, err := currentVersion(ctx, db)
	if err != nil {
		return err
	}
	if version == 0 {
		return nil
	}

	for _, m := range migrations {
		if m.Version != version {
			continue
		}
		if m.DownPath == "" {
			return fmt.Errorf("down migration missing for version %d", version)
		}
		return revertOne(ctx, db, m)
	}

	return fmt.Errorf("migration file not found for applied version %d", version)
}

func MigrationStatus(ctx context.Context, db *sql.DB, dir string) (string, error) {
	if err := ensureVersionTable(ctx, db); err != nil {
		return "", err
	}

	migrations, err := readMigrationDir(dir)
	if err != nil {
		return "", err
	}

	version, err := currentVersion(ctx, db)
	if err != nil {
		return "", err
	}

	latest := int64(0)
	if len(migrations) > 0 {
		latest = migrations[len(migrations)-1].Version
	}

	return fmt.Sprintf("current=%d latest=%d", version, latest), nil
}

func applyOne(ctx context.Context, db *sql.DB, m migration) error {
	content, err := os.ReadFile(m.UpPath)
	if err != nil {
		return fmt.Errorf("read up migration %s: %w", m.UpPath, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for migration %d: %w", m.Version, err)
	}

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply up migration %d: %w", m.Version, err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.Version, err)
	}

	return nil
}

func revertOne(ctx context.Context, db *sql.DB, m migration) error {
	content, err := os.ReadFile(m.DownPath)
	if err != nil {
		return fmt.Errorf("read down migration %s: %w", m.DownPath, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for down migration %d: %w", m.Version, err)
	}

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply down migration %d: %w", m.Version, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete migration record %d: %w", m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit down migration %d: %w", m.Version, err)
	}

	return nil
}

func ensureVersionTable(ctx context.Context, db *sql.DB) error {
	const q = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)
`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}
	return nil
}

func currentVersion(ctx context.Context, db *sql.DB) (int64, error) {
	var version int64
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read current migration version: %w", err)
	}
	return version, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int64]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]bool)
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan applied version: %w", err)
		}
		out[v] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied versions: %w", err)
	}

	return out, nil
}

func readMigrationDir(dir string) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir %s: %w", dir, err)
	}

	byVersion := make(map[int64]migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		version, ok := migrationVersion(name)
		if !ok {
			continue
		}

		m := byVersion[version]
		m.Version = version
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			m.Name = name
			m.UpPath = filepath.Join(dir, name)
		case strings.HasSuffix(name, ".down.sql"):
			m.DownPath = filepath.Join(dir, name)
		default:
			continue
		}
		byVersion[version] = m
	}

	migrations := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.UpPath == "" {
			return nil, fmt.Errorf("missing up migration for version %d", m.Version)
		}
		migrations = append(migrations, m)
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

func migrationVersion(filename string) (int64, bool) {
	if !strings.HasSuffix(filename, ".sql") {
		return 0, false
	}
	prefix, _, found := strings.Cut(filename, "_")
	if !found {
		return 0, false
	}
	version, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return version, true
}
