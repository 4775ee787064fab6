package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/worklog/db"
	"github.com/garnizeh/worklog/internal/auth"
	"github.com/garnizeh/worklog/internal/config"
	"github.com/garnizeh/worklog/internal/db"
	"github.com/garnizeh/worklog/internal/repository/sqlstore"
	"github.com/garnizeh/worklog/pkg/models"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	seedUser := flag.String("seed-user", "", "Username of an employee to create after the schema")
	seedPassword := flag.String("seed-password", "", "Password for the seeded employee")
	seedName := flag.String("seed-name", "", "Display name for the seeded employee")
	seedEmail := flag.String("seed-email", "", "Email for the seeded employee")
	seedBoss := flag.Bool("seed-boss", false, "Mark the seeded employee as a boss")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	dialect, err := cfg.Database.Dialect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, dialect, cfg.Database.DSN(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.InitSchema(ctx, database, dbfs.Schema); err != nil {
		fmt.Fprintf(os.Stderr, "Schema error: %v\n", err)
		os.Exit(1)
	}

	if *seedUser != "" {
		if *seedPassword == "" {
			fmt.Fprintln(os.Stderr, "Seed error: -seed-password is required with -seed-user")
			os.Exit(1)
		}
		hash, err := auth.HashPassword(*seedPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
			os.Exit(1)
		}

		e := &models.Employee{Name: *seedName, Email: *seedEmail, Username: *seedUser, Password: hash}
		if *seedBoss {
			e.IsBoss = 1
		}
		id, err := sqlstore.New(database, nil).CreateEmployee(ctx, e)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded employee %q with id %d.\n", *seedUser, id)
	}

	fmt.Println("Database initialized successfully.")
}
