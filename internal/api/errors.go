package api

import (
	"errors"
	"fmt"
)

// Route-level failures. These surface to clients verbatim through the 500
// envelope, so the texts are part of the API contract.
var (
	ErrUserNotFound        = errors.New("User not found")
	ErrStakeNotFound       = errors.New("Stake not found")
	ErrDuplicateTxHash     = errors.New("Transaction with this external hash already exists")
	ErrEmailTaken          = errors.New("Email is already taken by another user")
	ErrAddressExists       = errors.New("User with this address already exists")
	ErrEmailExists         = errors.New("User with this email already exists")
	ErrStakeIDRequired     = errors.New("Stake ID is required")
	ErrUserIDRequired      = errors.New("User ID is required")
	ErrInvalidAuthType     = errors.New("Invalid authType: must be WALLET, EMAIL or BOTH")
	ErrInvalidStakeStatus  = errors.New("Invalid status: must be ACTIVE, COMPLETED, CANCELLED or UNSTAKED")
	ErrTransactionNotFound = errors.New("No transaction found with this ID.")
	ErrNoUserTransactions  = errors.New("No transactions found for this user ID.")
)

// errInvalidTransactionType rejects a type outside the enumerated set
func errInvalidTransactionType(t string) error {
	return fmt.Errorf("Invalid transaction type: %s", t)
}

// errInvalidQueryParam rejects a query parameter outside a route's allowed set
func errInvalidQueryParam(param string) error {
	return fmt.Errorf("Invalid query parameter: %s", param)
}

// errMissingFields names the required field set of a route
func errMissingFields(fields string) error {
	return fmt.Errorf("Missing required fields: %s", fields)
}

// errNoUsersFound reports an empty user listing for a given filter
func errNoUsersFound(filter string) error {
	return fmt.Errorf("No users found for this %s", filter)
}
