package api

import (
	"context" // Context for cache invalidation
	"fmt"     // Cache key prefixes
	"math"    // Return percentage rounding
	"strings" // Token symbol normalization
	"time"    // Stake time arithmetic

	store "staking_dashboard/internal/db" // Storage helpers: retry + error kinds
	"staking_dashboard/internal/domain"   // Importing domain models
	"staking_dashboard/internal/utils"    // Cache utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Service recorded on companion rows of stakes handled on-platform
const internalStakingService = "INTERNAL_STAKING"

// CreateStakeRequest is the POST /stake/create body
type CreateStakeRequest struct {
	UserID           string   `json:"userId"`           // Wallet address of the staker
	TokenAddress     string   `json:"tokenAddress"`     // Staked token contract address
	TokenSymbol      string   `json:"tokenSymbol"`      // Staked token symbol
	Amount           float64  `json:"amount"`           // Staked amount
	Duration         int      `json:"duration"`         // Duration in days
	APY              float64  `json:"apy"`              // Annual percentage yield
	IsFlexible       *bool    `json:"isFlexible"`       // Flexible stake flag
	MinDuration      *int     `json:"minDuration"`      // Minimum duration for flexible stakes
	PoolID           *int     `json:"poolId"`           // Optional pool reference
	PoolName         *string  `json:"poolName"`         // Optional pool name
	PoolCategory     *string  `json:"poolCategory"`     // Optional pool category
	CbvRateAtStake   *float64 `json:"cbvRateAtStake"`   // CBV token rate at time of stake (from contract/API)
	ReturnPercentage *int     `json:"returnPercentage"` // Return percentage in basis points (APY * 100)
	IsEthStake       *bool    `json:"isEthStake"`       // true for ETH staking, false for token staking
	ExternalTxHash   *string  `json:"externalTxHash"`   // Blockchain transaction hash
	ExternalService  *string  `json:"externalService"`  // Service that processed the transaction
	GasUsed          *float64 `json:"gasUsed"`          // Gas consumed
	GasPrice         *float64 `json:"gasPrice"`         // Gas price paid
	BlockNumber      *int64   `json:"blockNumber"`      // Block containing the transaction
}

// stakeEndTime computes the end of a stake from its start and duration in days
func stakeEndTime(start time.Time, durationDays int) time.Time {
	return start.Add(time.Duration(durationDays) * 24 * time.Hour)
}

// defaultReturnPercentage converts an APY into basis points
func defaultReturnPercentage(apy float64) int {
	return int(math.Floor(apy * 100))
}

// defaultIsEthStake flags ETH stakes by token symbol
func defaultIsEthStake(tokenSymbol string) bool {
	return strings.ToUpper(tokenSymbol) == "ETH"
}

// stakeListPrefix is the cache key prefix of one stake-list filter combination
func stakeListPrefix(userKey, statusKey string) string {
	return fmt.Sprintf("stakes:user:%s:status:%s", userKey, statusKey)
}

// CreateStakeHandler records a new stake. The stake row and its companion
// STAKE transaction are written in one database transaction: both become
// visible together or not at all.
func CreateStakeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		var req CreateStakeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		// Validate required fields. cbvRateAtStake must be present: the rate
		// comes from the contract at stake time and cannot be defaulted.
		if req.UserID == "" || req.TokenAddress == "" || req.TokenSymbol == "" ||
			req.Amount == 0 || req.Duration == 0 || req.APY == 0 || req.CbvRateAtStake == nil {
			return nil, errMissingFields("userId, tokenAddress, tokenSymbol, amount, duration, apy, cbvRateAtStake")
		}
		// Resolve the wallet address to the internal user row
		user, err := resolveUserByAddress(db, req.UserID)
		if err != nil {
			return nil, err
		}

		// Calculate end time and derived fields
		startTime := time.Now()
		endTime := stakeEndTime(startTime, req.Duration)
		returnPercentage := defaultReturnPercentage(req.APY)
		if req.ReturnPercentage != nil {
			returnPercentage = *req.ReturnPercentage
		}
		isEthStake := defaultIsEthStake(req.TokenSymbol)
		if req.IsEthStake != nil {
			isEthStake = *req.IsEthStake
		}
		isFlexible := req.IsFlexible != nil && *req.IsFlexible
		externalService := internalStakingService
		if isSet(req.ExternalService) {
			externalService = *req.ExternalService
		}

		stake := domain.Stake{
			UserID:           user.ID,
			TokenAddress:     req.TokenAddress,
			TokenSymbol:      req.TokenSymbol,
			Amount:           req.Amount,
			Duration:         req.Duration,
			StartTime:        startTime,
			EndTime:          endTime,
			APY:              req.APY,
			Status:           domain.StakeStatusActive,
			IsFlexible:       isFlexible,
			MinDuration:      req.MinDuration,
			PoolID:           req.PoolID,
			PoolName:         req.PoolName,
			PoolCategory:     req.PoolCategory,
			CbvRateAtStake:   *req.CbvRateAtStake,
			ReturnPercentage: returnPercentage,
			IsEthStake:       isEthStake,
		}
		// Create stake and its companion transaction atomically
		err = store.WithRetry(func() error {
			return db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&stake).Error; err != nil {
					return err // Return error to rollback
				}
				companion := domain.Transaction{
					UserID:          user.ID,
					Type:            domain.TransactionTypeStake,
					Status:          domain.TransactionStatusConfirmed,
					Amount:          &stake.Amount,
					TokenAddress:    &stake.TokenAddress,
					ExternalTxHash:  req.ExternalTxHash,
					ExternalService: &externalService,
					GasUsed:         req.GasUsed,
					GasPrice:        req.GasPrice,
					BlockNumber:     req.BlockNumber,
				}
				return tx.Create(&companion).Error
			})
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"amount":  req.Amount,
				"token":   req.TokenSymbol,
				"error":   err.Error(),
			}).Error("Stake creation failed")
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"stake_id": stake.ID,
			"amount":   stake.Amount,
			"token":    stake.TokenSymbol,
			"duration": stake.Duration,
		}).Info("Stake created")
		// Invalidate cached list pages for this user and the unfiltered list
		invalidateStakeCaches(rdb, user.ID)
		invalidateTransactionCaches(rdb, user.ID)
		return &Result{Data: newStakeResponse(&stake, user), Message: "Stake created successfully"}, nil
	})
}

// UpdateStakeRequest is the PUT /stake/update body
type UpdateStakeRequest struct {
	StakeID  uint     `json:"stakeId"`  // Stake to update
	Duration *int     `json:"duration"` // New duration in days; recomputes end time
	Amount   *float64 `json:"amount"`   // New amount
	Status   *string  `json:"status"`   // New lifecycle state
}

// UpdateStakeHandler updates a stake. Setting status to UNSTAKED also writes
// a companion UNSTAKE transaction carrying the pre-update amount and token,
// in the same database transaction. No other status emits a companion row and
// no transition guard is applied beyond membership in the enumerated set.
func UpdateStakeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		var req UpdateStakeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		if req.StakeID == 0 {
			return nil, ErrStakeIDRequired
		}
		// Check if stake exists
		var existing domain.Stake
		err := store.WithRetry(func() error {
			return db.First(&existing, req.StakeID).Error
		})
		if err != nil {
			if store.IsNotFound(err) {
				return nil, ErrStakeNotFound
			}
			return nil, err
		}

		updates := map[string]any{}
		if req.Duration != nil {
			updates["duration"] = *req.Duration
			// Recalculate end time from the original start time, not a new now
			updates["end_time"] = stakeEndTime(existing.StartTime, *req.Duration)
		}
		if req.Amount != nil {
			updates["amount"] = *req.Amount
		}
		unstaking := false
		if req.Status != nil {
			status := domain.StakeStatus(*req.Status)
			if !status.Valid() {
				return nil, ErrInvalidStakeStatus
			}
			updates["status"] = status
			unstaking = status == domain.StakeStatusUnstaked
		}

		var updated domain.Stake
		err = store.WithRetry(func() error {
			return db.Transaction(func(tx *gorm.DB) error {
				if len(updates) > 0 {
					if err := tx.Model(&domain.Stake{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
						return err // Return error to rollback
					}
				}
				// Unstaking emits an audit row with the pre-update values
				if unstaking {
					companion := domain.Transaction{
						UserID:          existing.UserID,
						Type:            domain.TransactionTypeUnstake,
						Status:          domain.TransactionStatusConfirmed,
						Amount:          &existing.Amount,
						TokenAddress:    &existing.TokenAddress,
						ExternalService: strPtr(internalStakingService),
					}
					if err := tx.Create(&companion).Error; err != nil {
						return err // Return error to rollback
					}
				}
				return tx.First(&updated, existing.ID).Error
			})
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"stake_id": existing.ID,
				"error":    err.Error(),
			}).Error("Stake update failed")
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"stake_id": updated.ID,
			"status":   updated.Status,
		}).Info("Stake updated")
		invalidateStakeCaches(rdb, existing.UserID)
		if unstaking {
			invalidateTransactionCaches(rdb, existing.UserID)
		}
		return &Result{Data: newStakeResponse(&updated, nil), Message: "Stake updated successfully"}, nil
	})
}

// Query parameters accepted by GET /stake/list
var stakeListParams = []string{"page", "limit", "sortBy", "order", "userId", "status"}

// cached shape of one stake-list page
type stakeListPage struct {
	Data       []StakeResponse `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

// ListStakesHandler returns a filterable, paginated stake listing. A userId
// filter naming an unknown address yields an empty zero-count page, not an
// error. Pages are cached in Redis for a short TTL.
func ListStakesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		if err := validateQueryParams(c, stakeListParams); err != nil {
			return nil, err
		}
		params := GetPaginationParams(c)

		userKey := "all"
		query := db.Model(&domain.Stake{})
		if address := c.Query("userId"); address != "" {
			user, err := resolveUserByAddress(db, address)
			if err == ErrUserNotFound {
				// Unknown user filters list to nothing rather than failing
				return &Result{
					Data:       []StakeResponse{},
					Message:    "No stakes found for user",
					Pagination: &PaginationInfo{TotalItems: 0, TotalPages: 0, CurrentPage: params.Page},
				}, nil
			}
			if err != nil {
				return nil, err
			}
			query = query.Where("user_id = ?", user.ID)
			userKey = fmt.Sprintf("%d", user.ID)
		}
		statusKey := "any"
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
			statusKey = status
		}

		ctx := context.Background()
		cacheKey := utils.ListPageKey(stakeListPrefix(userKey, statusKey), params.Page, params.Limit, toSnakeCase(params.SortBy), params.Order)
		var cached stakeListPage
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				return &Result{Data: cached.Data, Message: "Stakes retrieved successfully", Pagination: cached.Pagination}, nil
			}
		}

		var totalItems int64
		var stakes []domain.Stake
		err := store.WithRetry(func() error {
			if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
				return err
			}
			return params.Apply(query.Session(&gorm.Session{}).Preload("User")).Find(&stakes).Error
		})
		if err != nil {
			return nil, err
		}
		data := make([]StakeResponse, 0, len(stakes))
		for i := range stakes {
			data = append(data, newStakeResponse(&stakes[i], &stakes[i].User))
		}
		pagination := params.Info(totalItems)
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, stakeListPage{Data: data, Pagination: pagination}, utils.ListCacheTTL)
		}
		return &Result{Data: data, Message: "Stakes retrieved successfully", Pagination: pagination}, nil
	})
}

// invalidateStakeCaches drops the cached stake-list pages touched by a write
func invalidateStakeCaches(rdb *redis.Client, userID uint) {
	utils.InvalidateListPages(context.Background(), rdb,
		stakeListPrefix(fmt.Sprintf("%d", userID), "any"),
		stakeListPrefix("all", "any"),
	)
}

// strPtr returns a pointer to s
func strPtr(s string) *string {
	return &s
}
