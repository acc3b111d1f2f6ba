package domain

import "errors"

// Storage-level errors
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Business rule errors
var (
	ErrValidation    = errors.New("invalid input")
	ErrCredentials   = errors.New("invalid username or password")
	ErrPermission    = errors.New("not permitted")
	ErrAuctionClosed = errors.New("auction is closed")
	ErrBidTooLow     = errors.New("bid amount too low")
)
