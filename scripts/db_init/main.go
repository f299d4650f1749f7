package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	dbfs "github.com/prepmate/mockview/db"
	"github.com/prepmate/mockview/internal/config"
	"github.com/prepmate/mockview/internal/db"
)

func main() {
	var reseed = flag.Bool("reseed", false, "delete existing questions and reseed from the embedded bank")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	if *reseed {
		if err := db.SeedQuestions(ctx, database, dbfs.SeedFiles, true); err != nil {
			fmt.Fprintf(os.Stderr, "Reseed error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Database initialized successfully.")
}
