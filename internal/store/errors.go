package store

import "errors"

var (
	ErrBayNotFound            = errors.New("bay not found")
	ErrDuplicateBayName       = errors.New("bay name already exists")
	ErrBayOccupied            = errors.New("bay occupied")
	ErrBayHasActiveWorkOrder  = errors.New("bay has active work order")
	ErrWaitlistNotEmpty       = errors.New("bay waitlist not empty")
	ErrWorkOrderNotFound      = errors.New("work order not found")
	ErrWorkOrderAssigned      = errors.New("work order already assigned to a bay")
	ErrAlreadyWaitlisted      = errors.New("work order already waitlisted for bay")
	ErrNoActiveWorkOrder      = errors.New("no active work order for bay")
	ErrEntryNotFound          = errors.New("waitlist entry not found")
	ErrInvalidState           = errors.New("invalid work order state")
	ErrConcurrentModification = errors.New("concurrent bay modification")
	ErrBillingFailed          = errors.New("invoice creation failed")
	ErrSessionNotFound        = errors.New("session not found")
)
