package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// RunMigrations applies every .sql file in lexical order. When dir names
// an existing directory its files win; otherwise the embedded set is used,
// so a bare binary can still bootstrap its schema.
func RunMigrations(conn *sql.DB, dir string) error {
	fsys, root, err := migrationSource(dir)
	if err != nil {
		return err
	}
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := fs.ReadFile(fsys, filepath.Join(root, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if len(data) == 0 {
			continue
		}
		if _, err := conn.Exec(string(data)); err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
	}
	return nil
}

func migrationSource(dir string) (fs.FS, string, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			return os.DirFS(dir), ".", nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("stat migrations dir: %w", err)
		}
	}
	return embeddedMigrations, "migrations", nil
}
