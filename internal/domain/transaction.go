package domain

import "time"

// TransactionType is the kind of transaction being recorded
type TransactionType string

// Transaction types
const (
	TransactionTypeStake            TransactionType = "STAKE"             // Companion row of a stake creation
	TransactionTypeUnstake          TransactionType = "UNSTAKE"           // Companion row of an unstake
	TransactionTypeSwap             TransactionType = "SWAP"              // Token swap
	TransactionTypeTransfer         TransactionType = "TRANSFER"          // Token transfer
	TransactionTypeExternalTransfer TransactionType = "EXTERNAL_TRANSFER" // Transfer processed off-platform
)

// Valid reports whether the type is one of the enumerated kinds
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeStake, TransactionTypeUnstake, TransactionTypeSwap,
		TransactionTypeTransfer, TransactionTypeExternalTransfer:
		return true
	}
	return false
}

// TransactionStatus is the settlement state of a transaction
type TransactionStatus string

// Transaction settlement states
const (
	TransactionStatusPending   TransactionStatus = "PENDING"   // Awaiting confirmation
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED" // Settled
	TransactionStatusFailed    TransactionStatus = "FAILED"    // Failed on chain or off chain
	TransactionStatusCancelled TransactionStatus = "CANCELLED" // Cancelled by the user
)

// Transaction Model
type Transaction struct {
	ID              uint              `gorm:"primaryKey" json:"id"`                       // Primary key
	UserID          uint              `gorm:"index;not null" json:"userId"`               // Foreign key to User
	User            User              `json:"-"`                                          // Owning user, preloaded on list
	Type            TransactionType   `gorm:"size:32;not null" json:"type"`               // Transaction kind
	Status          TransactionStatus `gorm:"size:16;default:PENDING" json:"status"`      // Settlement state
	FromToken       *string           `gorm:"size:64" json:"fromToken"`                   // Swap: source token
	ToToken         *string           `gorm:"size:64" json:"toToken"`                     // Swap: destination token
	FromAmount      *float64          `json:"fromAmount"`                                 // Swap: source amount
	ToAmount        *float64          `json:"toAmount"`                                   // Swap: destination amount
	SwapRate        *float64          `json:"swapRate"`                                   // Swap: exchange rate
	Recipient       *string           `gorm:"size:64" json:"recipient"`                   // Transfer: recipient address
	Amount          *float64          `json:"amount"`                                     // Transfer/stake: amount
	TokenAddress    *string           `gorm:"size:64" json:"tokenAddress"`                // Transfer/stake: token contract address
	ExternalTxHash  *string           `gorm:"uniqueIndex;size:128" json:"externalTxHash"` // On-chain hash, unique when set
	ExternalService *string           `gorm:"size:64" json:"externalService"`             // Service that processed the transaction
	GasUsed         *float64          `json:"gasUsed"`                                    // Gas consumed
	GasPrice        *float64          `json:"gasPrice"`                                   // Gas price paid
	BlockNumber     *int64            `json:"blockNumber"`                                // Block containing the transaction
	CreatedAt       time.Time         `json:"createdAt"`                                  // Timestamp of creation
	UpdatedAt       time.Time         `json:"updatedAt"`                                  // Timestamp of last update
}
