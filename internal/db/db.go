package db

import (
	"time" // For measuring probe duration

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open connects to the database and returns the shared handle.
// The returned *gorm.DB holds a connection pool and is safe for concurrent use.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true, // Map driver errors to gorm's error set (duplicate key, etc.)
	})
}

// HealthStatus is the result of a database connectivity probe
type HealthStatus struct {
	Healthy      bool   `json:"healthy"`         // Whether the probe succeeded
	Message      string `json:"message"`         // Human-readable summary
	ResponseTime int64  `json:"responseTimeMs"`  // Probe duration in milliseconds
	Error        string `json:"error,omitempty"` // Error detail when unhealthy
}

// CheckHealth runs a trivial query to verify database connectivity
func CheckHealth(db *gorm.DB) HealthStatus {
	start := time.Now()
	var one int
	// Simple query to test database connectivity
	if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		elapsed := time.Since(start).Milliseconds()
		logrus.WithFields(logrus.Fields{
			"response_time_ms": elapsed,
			"error":            err.Error(),
		}).Error("Database health check failed")
		return HealthStatus{
			Healthy:      false,
			Message:      "Database connection failed",
			ResponseTime: elapsed,
			Error:        err.Error(),
		}
	}
	elapsed := time.Since(start).Milliseconds()
	logrus.WithField("response_time_ms", elapsed).Info("Database connection is healthy")
	return HealthStatus{
		Healthy:      true,
		Message:      "Database connection is healthy",
		ResponseTime: elapsed,
	}
}
