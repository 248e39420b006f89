package domain

import "errors"

// Precondition errors, returned to the caller
var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrAccessRejected     = errors.New("caller is not the listing owner")
	ErrMinimalPriceNotMet = errors.New("bid does not exceed the current price")
	ErrListingAlreadySold = errors.New("listing is already sold")
)

// Environment fault: a write failed after its preconditions had passed
var ErrUpdateFailed = errors.New("failed to update listing")
