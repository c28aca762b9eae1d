package main

import (
	"staking_dashboard/internal/config" // Custom import path (Config)
	"staking_dashboard/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Create tables, indexes and constraints
}
