package domain

import "time"

// StakeStatus is the lifecycle state of a stake
type StakeStatus string

// Stake lifecycle states
const (
	StakeStatusActive    StakeStatus = "ACTIVE"    // Currently staked
	StakeStatusCompleted StakeStatus = "COMPLETED" // Reached end time
	StakeStatusCancelled StakeStatus = "CANCELLED" // Cancelled before completion
	StakeStatusUnstaked  StakeStatus = "UNSTAKED"  // Withdrawn by the user
)

// Valid reports whether the status is one of the enumerated states
func (s StakeStatus) Valid() bool {
	switch s {
	case StakeStatusActive, StakeStatusCompleted, StakeStatusCancelled, StakeStatusUnstaked:
		return true
	}
	return false
}

// Stake Model
type Stake struct {
	ID               uint        `gorm:"primaryKey" json:"id"`                 // Primary key
	UserID           uint        `gorm:"index;not null" json:"userId"`         // Foreign key to User
	User             User        `json:"-"`                                    // Owning user, preloaded on list
	TokenAddress     string      `gorm:"size:64;not null" json:"tokenAddress"` // Staked token contract address
	TokenSymbol      string      `gorm:"size:16;not null" json:"tokenSymbol"`  // Staked token symbol
	Amount           float64     `gorm:"not null" json:"amount"`               // Staked amount
	Duration         int         `gorm:"not null" json:"duration"`             // Duration in days
	StartTime        time.Time   `json:"startTime"`                            // When the stake started
	EndTime          time.Time   `json:"endTime"`                              // StartTime + Duration days
	APY              float64     `gorm:"column:apy" json:"apy"`                // Annual percentage yield
	Status           StakeStatus `gorm:"size:16;default:ACTIVE" json:"status"` // Lifecycle state
	IsFlexible       bool        `json:"isFlexible"`                           // Flexible stake flag
	MinDuration      *int        `json:"minDuration"`                          // Minimum duration for flexible stakes
	PoolID           *int        `json:"poolId"`                               // Optional pool reference
	PoolName         *string     `gorm:"size:64" json:"poolName"`              // Optional pool name
	PoolCategory     *string     `gorm:"size:32" json:"poolCategory"`          // Optional pool category
	CbvRateAtStake   float64     `json:"cbvRateAtStake"`                       // CBV token rate at time of stake
	ReturnPercentage int         `json:"returnPercentage"`                     // Return in basis points (APY * 100)
	IsEthStake       bool        `json:"isEthStake"`                           // true for ETH staking, false for token staking
	CreatedAt        time.Time   `json:"createdAt"`                            // Timestamp of creation
	UpdatedAt        time.Time   `json:"updatedAt"`                            // Timestamp of last update
}
