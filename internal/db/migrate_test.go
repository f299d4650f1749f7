package db_test

import (
	"context"
	"testing"

	dbfs "github.com/prepmate/mockview/db"
	"github.com/prepmate/mockview/internal/db"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	database.GetConn().SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	return database
}

func countQuestions(t *testing.T, d *db.DB) int64 {
	t.Helper()
	var n int64
	if err := d.QueryRow(context.Background(), `SELECT COUNT(1) FROM questions`).Scan(&n); err != nil {
		t.Fatalf("count questions: %v", err)
	}
	return n
}

func TestMigrate_AppliesSchemaAndSeed(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if n := countQuestions(t, d); n == 0 {
		t.Fatalf("expected seeded questions")
	}

	// levels must be normalized to the two canonical tiers
	rows, err := d.QueryRows(ctx, `SELECT DISTINCT level FROM questions ORDER BY level`)
	if err != nil {
		t.Fatalf("query levels: %v", err)
	}
	defer rows.Close()
	var levels []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			t.Fatalf("scan level: %v", err)
		}
		levels = append(levels, l)
	}
	if len(levels) != 2 || levels[0] != "high" || levels[1] != "low" {
		t.Fatalf("expected normalized levels [high low], got %v", levels)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	before := countQuestions(t, d)

	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if after := countQuestions(t, d); after != before {
		t.Fatalf("second migrate changed the question bank: %d vs %d", before, after)
	}
}

func TestSeedQuestions_ForceResetsIDs(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	before := countQuestions(t, d)

	if err := db.SeedQuestions(ctx, d, dbfs.SeedFiles, true); err != nil {
		t.Fatalf("force reseed: %v", err)
	}
	if after := countQuestions(t, d); after != before {
		t.Fatalf("reseed changed the question count: %d vs %d", before, after)
	}

	var minID int64
	if err := d.QueryRow(ctx, `SELECT MIN(id) FROM questions`).Scan(&minID); err != nil {
		t.Fatalf("min id: %v", err)
	}
	if minID != 1 {
		t.Fatalf("reseed should restart ids at 1, got %d", minID)
	}
}
