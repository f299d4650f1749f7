package db

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/prepmate/mockview/pkg/models"
)

// Migrate applies migrations and seeds the question bank. It creates a
// `schema_migrations` table to track applied migrations and applies any SQL
// files in `db/migrations/` that have not yet been recorded. The question
// seed is applied only when the questions table is empty, so restarts are
// idempotent.
func Migrate(ctx context.Context, d *DB, migrationFS embed.FS, seedFS embed.FS) error {
	// ensure migrations table exists
	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	// embedded migrations are provided under "migrations/..." in the top-level db package
	migDir := "migrations"

	entries, err := fs.ReadDir(migrationFS, migDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	// collect .sql files and sort
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(strings.ToLower(name), ".sql") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	for _, fname := range files {
		// use filename (without extension) as migration version key
		version := strings.TrimSuffix(fname, path.Ext(fname))

		var count int
		row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration applied count: %w", err)
		}
		if count > 0 {
			// already applied
			continue
		}

		p := path.Join(migDir, fname)
		b, err := fs.ReadFile(migrationFS, p)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}
		if _, err := d.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("exec migration %s: %w", fname, err)
		}

		if _, err := d.Exec(ctx, `INSERT INTO schema_migrations (version, applied) VALUES (?, strftime('%s','now'))`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", fname, err)
		}
	}

	return SeedQuestions(ctx, d, seedFS, false)
}

// SeedQuestions loads the embedded question bank into the questions table.
// When force is false the seed runs only if the table is empty; when force is
// true existing questions are deleted and ids start over from 1.
//
// Each entry is validated against the embedded JSON schema; entries that fail
// validation or normalize to empty fields are skipped, not fatal.
func SeedQuestions(ctx context.Context, d *DB, seedFS embed.FS, force bool) error {
	if force {
		if _, err := d.Exec(ctx, `DELETE FROM questions`); err != nil {
			return fmt.Errorf("clear questions: %w", err)
		}
		if _, err := d.Exec(ctx, `DELETE FROM sqlite_sequence WHERE name = 'questions'`); err != nil {
			return fmt.Errorf("reset questions sequence: %w", err)
		}
	} else {
		var count int64
		if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM questions`).Scan(&count); err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		if count > 0 {
			return nil
		}
	}

	schemaB, err := fs.ReadFile(seedFS, path.Join("seed", "question_schema.json"))
	if err != nil {
		return fmt.Errorf("read question schema: %w", err)
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaB, rs); err != nil {
		return fmt.Errorf("compile question schema: %w", err)
	}

	seedB, err := fs.ReadFile(seedFS, path.Join("seed", "questions.json"))
	if err != nil {
		return fmt.Errorf("read seed questions: %w", err)
	}

	// keep raw entries so each can be schema-checked individually
	var raw []json.RawMessage
	if err := json.Unmarshal(seedB, &raw); err != nil {
		return fmt.Errorf("parse seed questions: %w", err)
	}

	inserted := 0
	for i, entry := range raw {
		verrs, err := rs.ValidateBytes(ctx, entry)
		if err != nil {
			return fmt.Errorf("validate seed entry %d: %w", i, err)
		}
		if len(verrs) > 0 {
			logger.Warn("skipping invalid seed question",
				slog.Int("index", i),
				slog.String("error", verrs[0].Message),
			)
			continue
		}

		var q models.Question
		if err := json.Unmarshal(entry, &q); err != nil {
			return fmt.Errorf("decode seed entry %d: %w", i, err)
		}

		q.Role = strings.TrimSpace(q.Role)
		q.Level = models.NormalizeLevel(q.Level)
		q.Question = strings.TrimSpace(q.Question)
		if q.Role == "" || q.Level == "" || q.Question == "" {
			continue
		}

		if _, err := d.Exec(ctx, `INSERT INTO questions (role, level, question) VALUES (?, ?, ?)`, q.Role, q.Level, q.Question); err != nil {
			return fmt.Errorf("insert seed question %d: %w", i, err)
		}
		inserted++
	}

	logger.Info("question seed applied", slog.Int("inserted", inserted), slog.Int("total", len(raw)))
	return nil
}
