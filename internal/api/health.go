package api

import (
	"errors"

	store "staking_dashboard/internal/db" // Health probe

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// HealthHandler probes database connectivity on demand, reusing the startup probe
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		status := store.CheckHealth(db)
		if !status.Healthy {
			return nil, errors.New(status.Message)
		}
		return &Result{Data: status, Message: status.Message}, nil
	})
}
