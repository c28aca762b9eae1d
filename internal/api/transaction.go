package api

import (
	"context" // Context for cache operations
	"fmt"     // Cache key prefixes

	store "staking_dashboard/internal/db" // Storage helpers: retry + error kinds
	"staking_dashboard/internal/domain"   // Importing domain models
	"staking_dashboard/internal/utils"    // Cache utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// CreateSwapRequest is the POST /swap/create body
type CreateSwapRequest struct {
	UserID          string  `json:"userId"`          // Wallet address
	FromToken       string  `json:"fromToken"`       // Source token
	ToToken         string  `json:"toToken"`         // Destination token
	FromAmount      float64 `json:"fromAmount"`      // Source amount
	ToAmount        float64 `json:"toAmount"`        // Destination amount
	SwapRate        float64 `json:"swapRate"`        // Exchange rate
	ExternalTxHash  *string `json:"externalTxHash"`  // Optional on-chain hash
	ExternalService *string `json:"externalService"` // Optional processing service
}

// CreateSwapHandler records a pending swap transaction
func CreateSwapHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		var req CreateSwapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		// Validate required fields
		if req.UserID == "" || req.FromToken == "" || req.ToToken == "" ||
			req.FromAmount == 0 || req.ToAmount == 0 || req.SwapRate == 0 {
			return nil, errMissingFields("userId, fromToken, toToken, fromAmount, toAmount, swapRate")
		}
		user, err := resolveUserByAddress(db, req.UserID)
		if err != nil {
			return nil, err
		}
		transaction := domain.Transaction{
			UserID:          user.ID,
			Type:            domain.TransactionTypeSwap,
			Status:          domain.TransactionStatusPending,
			FromToken:       &req.FromToken,
			ToToken:         &req.ToToken,
			FromAmount:      &req.FromAmount,
			ToAmount:        &req.ToAmount,
			SwapRate:        &req.SwapRate,
			ExternalTxHash:  req.ExternalTxHash,
			ExternalService: req.ExternalService,
		}
		err = store.WithRetry(func() error {
			return db.Create(&transaction).Error
		})
		if err != nil {
			if store.IsConstraint(err) {
				return nil, ErrDuplicateTxHash
			}
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"user_id":        user.ID,
			"transaction_id": transaction.ID,
			"from_token":     req.FromToken,
			"to_token":       req.ToToken,
		}).Info("Swap transaction created")
		invalidateTransactionCaches(rdb, user.ID)
		return &Result{Data: newTransactionResponse(&transaction, user), Message: "Swap transaction created successfully"}, nil
	})
}

// CreateTransferRequest is the POST /transfer/create body
type CreateTransferRequest struct {
	UserID          string  `json:"userId"`          // Wallet address of the sender
	Recipient       string  `json:"recipient"`       // Recipient address
	Amount          float64 `json:"amount"`          // Transfer amount
	TokenAddress    string  `json:"tokenAddress"`    // Token contract address
	ExternalTxHash  *string `json:"externalTxHash"`  // Optional on-chain hash
	ExternalService *string `json:"externalService"` // Optional processing service
}

// CreateTransferHandler records a pending transfer transaction
func CreateTransferHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		var req CreateTransferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		// Validate required fields
		if req.UserID == "" || req.Recipient == "" || req.Amount == 0 || req.TokenAddress == "" {
			return nil, errMissingFields("userId, recipient, amount, tokenAddress")
		}
		user, err := resolveUserByAddress(db, req.UserID)
		if err != nil {
			return nil, err
		}
		transaction := domain.Transaction{
			UserID:          user.ID,
			Type:            domain.TransactionTypeTransfer,
			Status:          domain.TransactionStatusPending,
			Recipient:       &req.Recipient,
			Amount:          &req.Amount,
			TokenAddress:    &req.TokenAddress,
			ExternalTxHash:  req.ExternalTxHash,
			ExternalService: req.ExternalService,
		}
		err = store.WithRetry(func() error {
			return db.Create(&transaction).Error
		})
		if err != nil {
			if store.IsConstraint(err) {
				return nil, ErrDuplicateTxHash
			}
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"user_id":        user.ID,
			"transaction_id": transaction.ID,
			"recipient":      req.Recipient,
			"amount":         req.Amount,
		}).Info("Transfer transaction created")
		invalidateTransactionCaches(rdb, user.ID)
		return &Result{Data: newTransactionResponse(&transaction, user), Message: "Transfer transaction created successfully"}, nil
	})
}

// CreateExternalTransactionRequest is the POST /transaction/external body
type CreateExternalTransactionRequest struct {
	UserID          string   `json:"userId"`          // Wallet address
	Type            string   `json:"type"`            // Transaction kind
	ExternalTxHash  string   `json:"externalTxHash"`  // On-chain hash, globally unique
	ExternalService string   `json:"externalService"` // Service that processed the transaction
	FromToken       *string  `json:"fromToken"`       // Swap payload
	ToToken         *string  `json:"toToken"`         // Swap payload
	FromAmount      *float64 `json:"fromAmount"`      // Swap payload
	ToAmount        *float64 `json:"toAmount"`        // Swap payload
	Recipient       *string  `json:"recipient"`       // Transfer payload
	Amount          *float64 `json:"amount"`          // Transfer payload
	TokenAddress    *string  `json:"tokenAddress"`    // Transfer payload
	GasUsed         *float64 `json:"gasUsed"`         // Gas consumed
	GasPrice        *float64 `json:"gasPrice"`        // Gas price paid
	BlockNumber     *int64   `json:"blockNumber"`     // Block containing the transaction
}

// CreateExternalTransactionHandler records a transaction processed off-platform.
// External transactions are always stored CONFIRMED regardless of caller
// input. The duplicate-hash lookup is only a fast fail; the unique index on
// external_tx_hash is what makes concurrent duplicates lose.
func CreateExternalTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		var req CreateExternalTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		// Validate required fields
		if req.UserID == "" || req.Type == "" || req.ExternalTxHash == "" || req.ExternalService == "" {
			return nil, errMissingFields("userId, type, externalTxHash, externalService")
		}
		txType := domain.TransactionType(req.Type)
		if !txType.Valid() {
			return nil, errInvalidTransactionType(req.Type)
		}
		user, err := resolveUserByAddress(db, req.UserID)
		if err != nil {
			return nil, err
		}
		// Fast-fail on a known hash before attempting the insert
		var existing domain.Transaction
		err = store.WithRetry(func() error {
			return db.Where("external_tx_hash = ?", req.ExternalTxHash).First(&existing).Error
		})
		if err == nil {
			return nil, ErrDuplicateTxHash
		}
		if !store.IsNotFound(err) {
			return nil, err
		}
		transaction := domain.Transaction{
			UserID:          user.ID,
			Type:            txType,
			Status:          domain.TransactionStatusConfirmed, // External transactions are recorded as confirmed
			FromToken:       req.FromToken,
			ToToken:         req.ToToken,
			FromAmount:      req.FromAmount,
			ToAmount:        req.ToAmount,
			Recipient:       req.Recipient,
			Amount:          req.Amount,
			TokenAddress:    req.TokenAddress,
			ExternalTxHash:  &req.ExternalTxHash,
			ExternalService: &req.ExternalService,
			GasUsed:         req.GasUsed,
			GasPrice:        req.GasPrice,
			BlockNumber:     req.BlockNumber,
		}
		err = store.WithRetry(func() error {
			return db.Create(&transaction).Error
		})
		if err != nil {
			// A concurrent insert of the same hash loses here on the unique index
			if store.IsConstraint(err) {
				return nil, ErrDuplicateTxHash
			}
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"user_id":          user.ID,
			"transaction_id":   transaction.ID,
			"external_tx_hash": req.ExternalTxHash,
			"external_service": req.ExternalService,
		}).Info("External transaction recorded")
		invalidateTransactionCaches(rdb, user.ID)
		return &Result{Data: newTransactionResponse(&transaction, user), Message: "External transaction recorded successfully"}, nil
	})
}

// Query parameters accepted by GET /transaction/list
var transactionListParams = []string{"page", "limit", "sortBy", "order", "userId", "type", "status", "externalService"}

// cached shape of one transaction-list page
type transactionListPage struct {
	Data       []TransactionResponse `json:"data"`
	Pagination *PaginationInfo       `json:"pagination"`
}

// transactionListPrefix is the cache key prefix of one filter combination
func transactionListPrefix(userKey string) string {
	return fmt.Sprintf("transactions:user:%s", userKey)
}

// ListTransactionsHandler returns a filterable, paginated transaction listing.
// The userId filter is a wallet address; an unknown address yields an empty
// zero-count page. Unfiltered default pages are cached in Redis.
func ListTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		if err := validateQueryParams(c, transactionListParams); err != nil {
			return nil, err
		}
		params := GetPaginationParams(c)

		userKey := "all"
		query := db.Model(&domain.Transaction{})
		if address := c.Query("userId"); address != "" {
			user, err := resolveUserByAddress(db, address)
			if err == ErrUserNotFound {
				// Unknown user filters list to nothing rather than failing
				return &Result{
					Data:       []TransactionResponse{},
					Message:    "No transactions found for user",
					Pagination: &PaginationInfo{TotalItems: 0, TotalPages: 0, CurrentPage: params.Page},
				}, nil
			}
			if err != nil {
				return nil, err
			}
			query = query.Where("user_id = ?", user.ID)
			userKey = fmt.Sprintf("%d", user.ID)
		}
		filtered := false
		if txType := c.Query("type"); txType != "" {
			query = query.Where("type = ?", txType)
			filtered = true
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
			filtered = true
		}
		if service := c.Query("externalService"); service != "" {
			query = query.Where("external_service = ?", service)
			filtered = true
		}

		// Only unfiltered pages are cached; filter combinations are unbounded
		ctx := context.Background()
		cacheKey := utils.ListPageKey(transactionListPrefix(userKey), params.Page, params.Limit, toSnakeCase(params.SortBy), params.Order)
		if rdb != nil && !filtered {
			var cached transactionListPage
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				return &Result{Data: cached.Data, Message: "Transactions retrieved successfully", Pagination: cached.Pagination}, nil
			}
		}

		var totalItems int64
		var transactions []domain.Transaction
		err := store.WithRetry(func() error {
			if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
				return err
			}
			return params.Apply(query.Session(&gorm.Session{}).Preload("User")).Find(&transactions).Error
		})
		if err != nil {
			return nil, err
		}
		data := make([]TransactionResponse, 0, len(transactions))
		for i := range transactions {
			data = append(data, newTransactionResponse(&transactions[i], &transactions[i].User))
		}
		pagination := params.Info(totalItems)
		if rdb != nil && !filtered {
			_ = utils.SetCache(ctx, rdb, cacheKey, transactionListPage{Data: data, Pagination: pagination}, utils.ListCacheTTL)
		}
		return &Result{Data: data, Message: "Transactions retrieved successfully", Pagination: pagination}, nil
	})
}

// Query parameters accepted by GET /transaction
var transactionQueryParams = []string{"page", "limit", "sortBy", "order", "id", "userId"}

// GetTransactionsHandler is the raw transaction query endpoint. Unlike
// /transaction/list, the userId filter here is the internal row id, and an
// empty result under a filter is an error rather than an empty page.
func GetTransactionsHandler(db *gorm.DB) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		if err := validateQueryParams(c, transactionQueryParams); err != nil {
			return nil, err
		}
		params := GetPaginationParams(c)

		query := db.Model(&domain.Transaction{})
		transactionID := c.Query("id")
		userID := c.Query("userId")
		if transactionID != "" {
			query = query.Where("id = ?", transactionID)
		}
		if userID != "" {
			query = query.Where("user_id = ?", userID)
		}

		var totalItems int64
		var transactions []domain.Transaction
		err := store.WithRetry(func() error {
			if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
				return err
			}
			return params.Apply(query.Session(&gorm.Session{})).Find(&transactions).Error
		})
		if err != nil {
			return nil, err
		}
		if len(transactions) == 0 {
			if transactionID != "" {
				return nil, ErrTransactionNotFound
			}
			if userID != "" {
				return nil, ErrNoUserTransactions
			}
		}
		data := make([]TransactionResponse, 0, len(transactions))
		for i := range transactions {
			data = append(data, newTransactionResponse(&transactions[i], nil))
		}
		return &Result{
			Data:       data,
			Message:    "Transactions fetched successfully",
			Pagination: params.Info(totalItems),
		}, nil
	})
}

// invalidateTransactionCaches drops cached transaction-list pages touched by a write
func invalidateTransactionCaches(rdb *redis.Client, userID uint) {
	utils.InvalidateListPages(context.Background(), rdb,
		transactionListPrefix(fmt.Sprintf("%d", userID)),
		transactionListPrefix("all"),
	)
}
