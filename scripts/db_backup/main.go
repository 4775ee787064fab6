package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/garnizeh/worklog/internal/config"
	"github.com/garnizeh/worklog/internal/db"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	// network stores are backed up with their own tooling
	if dialect, _ := cfg.Database.Dialect(); dialect != db.SQLite {
		fmt.Fprintf(os.Stderr, "Backup error: file backup only supports sqlite, configured driver is %q\n", cfg.Database.Driver)
		os.Exit(1)
	}
	src := cfg.Database.Path
	dst := src + ".bak"

	srcFile, err := os.Open(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database backup written to %s.\n", dst)
}
