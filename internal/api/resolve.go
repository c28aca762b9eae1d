package api

import (
	store "staking_dashboard/internal/db" // Storage helpers: retry + error kinds
	"staking_dashboard/internal/domain"   // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// resolveUserByAddress maps a public wallet address onto the internal user
// row. The lookup is retry-wrapped; a missing row surfaces as ErrUserNotFound
// so write routes fail while list routes can substitute their empty-result
// policy.
func resolveUserByAddress(db *gorm.DB, address string) (*domain.User, error) {
	var user domain.User
	err := store.WithRetry(func() error {
		return db.Where("address = ?", address).First(&user).Error
	})
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// isSet reports whether an optional string field is present and non-empty
func isSet(p *string) bool {
	return p != nil && *p != ""
}
