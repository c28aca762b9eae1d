package api

import (
	store "staking_dashboard/internal/db" // Storage helpers: retry + error kinds
	"staking_dashboard/internal/domain"   // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// SignupRequest is the POST /user/signup body
type SignupRequest struct {
	Address  *string `json:"address"`  // Wallet address, required for WALLET and BOTH
	Email    *string `json:"email"`    // Email, required for EMAIL and BOTH
	Username *string `json:"username"` // Optional display name
	AuthType string  `json:"authType"` // WALLET, EMAIL or BOTH
	Password *string `json:"password"` // Optional, stored bcrypt-hashed
}

// SignupHandler registers a new user. Signing up with an address that already
// exists returns that user instead of failing, which lets wallet clients use
// the same call as a login.
func SignupHandler(db *gorm.DB) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		authType := domain.AuthType(req.AuthType)
		if !authType.Valid() {
			return nil, ErrInvalidAuthType
		}
		// Validate required fields based on auth type
		if authType == domain.AuthTypeWallet && !isSet(req.Address) {
			return nil, errMissingFields("address (required for wallet authentication)")
		}
		if authType == domain.AuthTypeEmail && !isSet(req.Email) {
			return nil, errMissingFields("email (required for email authentication)")
		}
		if authType == domain.AuthTypeBoth && (!isSet(req.Address) || !isSet(req.Email)) {
			return nil, errMissingFields("address, email (required for BOTH authentication)")
		}
		// Signing up with a known address is treated as a login
		if isSet(req.Address) {
			var existing domain.User
			err := store.WithRetry(func() error {
				return db.Where("address = ?", *req.Address).First(&existing).Error
			})
			if err == nil {
				user := newUserResponse(&existing)
				return &Result{Data: user, Message: "User logged in successfully"}, nil
			}
			if !store.IsNotFound(err) {
				return nil, err
			}
		}
		// A duplicate email is still a hard failure
		if isSet(req.Email) {
			var existing domain.User
			err := store.WithRetry(func() error {
				return db.Where("email = ?", *req.Email).First(&existing).Error
			})
			if err == nil {
				return nil, ErrEmailExists
			}
			if !store.IsNotFound(err) {
				return nil, err
			}
		}
		user := domain.User{
			Address:  req.Address,
			Email:    req.Email,
			Username: req.Username,
			AuthType: authType,
		}
		// Hash the optional password before storing
		if isSet(req.Password) {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			user.Password = string(hash)
		}
		err := store.WithRetry(func() error {
			return db.Create(&user).Error
		})
		if err != nil {
			// The unique indexes on address/email are the real duplicate guard
			if store.IsConstraint(err) {
				return nil, ErrAddressExists
			}
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   user.ID,
			"auth_type": user.AuthType,
		}).Info("User created")
		return &Result{Data: newUserResponse(&user), Message: "User created successfully"}, nil
	})
}

// UpdateUserRequest is the PUT /user/update body
type UpdateUserRequest struct {
	UserID   string  `json:"userId"`   // Wallet address of the user to update
	Username *string `json:"username"` // New display name
	Email    *string `json:"email"`    // New email, checked for duplicates
}

// UpdateUserHandler updates the mutable profile fields of a user
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		if req.UserID == "" {
			return nil, ErrUserIDRequired
		}
		existing, err := resolveUserByAddress(db, req.UserID)
		if err != nil {
			return nil, err
		}
		updates := map[string]any{}
		if req.Username != nil {
			updates["username"] = *req.Username
		}
		if req.Email != nil {
			// Check if the email is already taken by another user
			if existing.Email == nil || *req.Email != *existing.Email {
				var other domain.User
				err := store.WithRetry(func() error {
					return db.Where("email = ?", *req.Email).First(&other).Error
				})
				if err == nil {
					return nil, ErrEmailTaken
				}
				if !store.IsNotFound(err) {
					return nil, err
				}
			}
			updates["email"] = *req.Email
		}
		var updated domain.User
		err = store.WithRetry(func() error {
			if len(updates) > 0 {
				if err := db.Model(&domain.User{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
					return err
				}
			}
			return db.First(&updated, existing.ID).Error
		})
		if err != nil {
			if store.IsConstraint(err) {
				return nil, ErrEmailTaken
			}
			return nil, err
		}
		return &Result{Data: newUserResponse(&updated), Message: "User profile updated successfully"}, nil
	})
}

// Query parameters accepted by GET /user
var userListParams = []string{"page", "limit", "sortBy", "order", "id", "email", "address", "username", "role"}

// ListUsersHandler returns a filterable, paginated user listing
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return Handle(func(c *gin.Context) (*Result, error) {
		if err := validateQueryParams(c, userListParams); err != nil {
			return nil, err
		}
		params := GetPaginationParams(c)

		query := db.Model(&domain.User{})
		if id := c.Query("id"); id != "" {
			query = query.Where("id = ?", id)
		}
		if email := c.Query("email"); email != "" {
			query = query.Where("email = ?", email)
		}
		if address := c.Query("address"); address != "" {
			query = query.Where("address = ?", address)
		}
		if username := c.Query("username"); username != "" {
			query = query.Where("username = ?", username)
		}
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}

		var totalItems int64
		var users []domain.User
		err := store.WithRetry(func() error {
			if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
				return err
			}
			return params.Apply(query.Session(&gorm.Session{})).Find(&users).Error
		})
		if err != nil {
			return nil, err
		}
		// An empty result while filtering is reported as an error
		if len(users) == 0 {
			for _, filter := range []string{"id", "email", "address", "username", "role"} {
				if c.Query(filter) != "" {
					return nil, errNoUsersFound(filter)
				}
			}
		}
		data := make([]UserResponse, 0, len(users))
		for i := range users {
			data = append(data, newUserResponse(&users[i]))
		}
		return &Result{
			Data:       data,
			Message:    "Fetched user details successfully",
			Pagination: params.Info(totalItems),
		}, nil
	})
}
