package db

import (
	"staking_dashboard/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes.
	// The unique index on transactions.external_tx_hash is the real duplicate guard;
	// the handler-level existence check is only a fast fail.
	err = db.AutoMigrate(&domain.User{}, &domain.Stake{}, &domain.Transaction{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
