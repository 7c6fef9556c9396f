package model

import "errors"

// Sentinel kinds for domain rule violations. Methods that return one of
// these leave the receiver unchanged.
var (
	ErrInvalidShowType        = errors.New("invalid show type")
	ErrShowNotFound           = errors.New("show not found")
	ErrInvalidFacility        = errors.New("invalid facility")
	ErrFacilityDowngrade      = errors.New("facility downgrade")
	ErrInvalidStaffRole       = errors.New("invalid staff role")
	ErrStaffNotFound          = errors.New("staff member not found")
	ErrRosterEmpty            = errors.New("roster is already empty")
	ErrTitleVacant            = errors.New("title is vacant")
	ErrInvalidTransition      = errors.New("invalid event status transition")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrDecode                 = errors.New("decode entity failed")
)
