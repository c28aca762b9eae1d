package api

import (
	"strconv"
	"time"

	"staking_dashboard/internal/domain"
)

// UserResponse is the user DTO returned by the user routes
type UserResponse struct {
	ID        uint      `json:"id"`
	Address   *string   `json:"address,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Username  *string   `json:"username,omitempty"`
	AuthType  string    `json:"authType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StakeResponse is the stake DTO. The userId field carries the owner's wallet
// address when one exists, falling back to the internal id.
type StakeResponse struct {
	ID               uint      `json:"id"`
	UserID           string    `json:"userId"`
	TokenAddress     string    `json:"tokenAddress"`
	TokenSymbol      string    `json:"tokenSymbol"`
	Amount           float64   `json:"amount"`
	Duration         int       `json:"duration"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	APY              float64   `json:"apy"`
	Status           string    `json:"status"`
	IsFlexible       bool      `json:"isFlexible"`
	MinDuration      *int      `json:"minDuration,omitempty"`
	PoolID           *int      `json:"poolId,omitempty"`
	PoolName         *string   `json:"poolName,omitempty"`
	PoolCategory     *string   `json:"poolCategory,omitempty"`
	CbvRateAtStake   float64   `json:"cbvRateAtStake"`
	ReturnPercentage int       `json:"returnPercentage"`
	IsEthStake       bool      `json:"isEthStake"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// TransactionResponse is the transaction DTO
type TransactionResponse struct {
	ID              uint      `json:"id"`
	UserID          string    `json:"userId"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	FromToken       *string   `json:"fromToken,omitempty"`
	ToToken         *string   `json:"toToken,omitempty"`
	FromAmount      *float64  `json:"fromAmount,omitempty"`
	ToAmount        *float64  `json:"toAmount,omitempty"`
	SwapRate        *float64  `json:"swapRate,omitempty"`
	Recipient       *string   `json:"recipient,omitempty"`
	Amount          *float64  `json:"amount,omitempty"`
	TokenAddress    *string   `json:"tokenAddress,omitempty"`
	ExternalTxHash  *string   `json:"externalTxHash,omitempty"`
	ExternalService *string   `json:"externalService,omitempty"`
	GasUsed         *float64  `json:"gasUsed,omitempty"`
	GasPrice        *float64  `json:"gasPrice,omitempty"`
	BlockNumber     *int64    `json:"blockNumber,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// userLabel renders the public identifier of a user: the wallet address when
// present, otherwise the internal id
func userLabel(u *domain.User) string {
	if u != nil && u.Address != nil && *u.Address != "" {
		return *u.Address
	}
	if u != nil {
		return strconv.FormatUint(uint64(u.ID), 10)
	}
	return ""
}

// newUserResponse maps a user row to its DTO
func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Address:   u.Address,
		Email:     u.Email,
		Username:  u.Username,
		AuthType:  string(u.AuthType),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// newStakeResponse maps a stake row to its DTO; owner carries the resolved
// user when available, otherwise the internal id is used as userId
func newStakeResponse(s *domain.Stake, owner *domain.User) StakeResponse {
	userID := strconv.FormatUint(uint64(s.UserID), 10)
	if owner != nil {
		userID = userLabel(owner)
	}
	return StakeResponse{
		ID:               s.ID,
		UserID:           userID,
		TokenAddress:     s.TokenAddress,
		TokenSymbol:      s.TokenSymbol,
		Amount:           s.Amount,
		Duration:         s.Duration,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		APY:              s.APY,
		Status:           string(s.Status),
		IsFlexible:       s.IsFlexible,
		MinDuration:      s.MinDuration,
		PoolID:           s.PoolID,
		PoolName:         s.PoolName,
		PoolCategory:     s.PoolCategory,
		CbvRateAtStake:   s.CbvRateAtStake,
		ReturnPercentage: s.ReturnPercentage,
		IsEthStake:       s.IsEthStake,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// newTransactionResponse maps a transaction row to its DTO
func newTransactionResponse(t *domain.Transaction, owner *domain.User) TransactionResponse {
	userID := strconv.FormatUint(uint64(t.UserID), 10)
	if owner != nil {
		userID = userLabel(owner)
	}
	return TransactionResponse{
		ID:              t.ID,
		UserID:          userID,
		Type:            string(t.Type),
		Status:          string(t.Status),
		FromToken:       t.FromToken,
		ToToken:         t.ToToken,
		FromAmount:      t.FromAmount,
		ToAmount:        t.ToAmount,
		SwapRate:        t.SwapRate,
		Recipient:       t.Recipient,
		Amount:          t.Amount,
		TokenAddress:    t.TokenAddress,
		ExternalTxHash:  t.ExternalTxHash,
		ExternalService: t.ExternalService,
		GasUsed:         t.GasUsed,
		GasPrice:        t.GasPrice,
		BlockNumber:     t.BlockNumber,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
