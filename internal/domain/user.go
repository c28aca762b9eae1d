package domain

import "time"

// AuthType describes how a user authenticates
type AuthType string

// Supported authentication modes
const (
	AuthTypeWallet AuthType = "WALLET" // Wallet-address authentication
	AuthTypeEmail  AuthType = "EMAIL"  // Email authentication
	AuthTypeBoth   AuthType = "BOTH"   // Both wallet and email
)

// Valid reports whether the auth type is one of the supported modes
func (a AuthType) Valid() bool {
	switch a {
	case AuthTypeWallet, AuthTypeEmail, AuthTypeBoth:
		return true
	}
	return false
}

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`               // Primary key
	Address   *string   `gorm:"uniqueIndex;size:64" json:"address"` // Wallet address, unique when set
	Email     *string   `gorm:"uniqueIndex;size:255" json:"email"`  // Email, unique when set
	Username  *string   `gorm:"size:64" json:"username"`            // Display name
	AuthType  AuthType  `gorm:"size:16;not null" json:"authType"`   // Authentication mode
	Role      string    `gorm:"size:16;default:USER" json:"role"`   // Role: USER or ADMIN
	Password  string    `gorm:"size:128" json:"-"`                  // Optional bcrypt hash, never serialized
	CreatedAt time.Time `json:"createdAt"`                          // Timestamp of creation
	UpdatedAt time.Time `json:"updatedAt"`                          // Timestamp of last update
}
