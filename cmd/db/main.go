package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"hamming-numbers/internal/config"
	"hamming-numbers/internal/logging"
	"hamming-numbers/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbPath := cfg.Database.Path
	logger.Info("setting up database", zap.String("path", dbPath))

	db, err := store.InitDB(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Drop existing tables and recreate the schema
	logger.Info("resetting tables")
	if err := store.Reset(db); err != nil {
		logger.Fatal("failed to reset database", zap.Error(err))
	}

	logger.Info("database setup completed")
	fmt.Println("\nTables created:")
	fmt.Println("- counts (cached counts keyed by type, threshold, strategy and basis)")
	fmt.Println("- sweeps (sweep parameters keyed by uuid)")
	fmt.Println("- sweep_cells (one row per grid cell)")
}
