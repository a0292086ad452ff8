package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreUnavailable   = errors.New("record store unavailable")
)

// Identity errors
var (
	ErrIdentityNotFound = errors.New("identity not recognized")
	ErrIdentityInactive = errors.New("identity is not active")
)

// Inventory and loan errors
var (
	ErrItemNotFound        = errors.New("item not found")
	ErrItemAlreadyExists   = errors.New("item code already exists")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrLoanAlreadyReturned = errors.New("loan already returned")
)

// Mail errors
var (
	ErrMailDisabled = errors.New("mail sending disabled")
)
