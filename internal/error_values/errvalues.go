package errorvalues

import (
	"errors"
	"fmt"
)

// Validation errors are reported to the caller and never change state.
var (
	ErrValidation        = errors.New("validation error")
	ErrEmptyName         = fmt.Errorf("%w: please enter your name", ErrValidation)
	ErrChallengeRequired = fmt.Errorf("%w: please select a challenge", ErrValidation)
	ErrUnknownChallenge  = fmt.Errorf("%w: unknown challenge", ErrValidation)
	ErrNonPositiveValue  = fmt.Errorf("%w: activity value must be a positive number", ErrValidation)
	ErrInvalidDate       = fmt.Errorf("%w: activity date must be formatted as YYYY-MM-DD", ErrValidation)
	ErrSelfFriend        = fmt.Errorf("%w: you cannot follow yourself", ErrValidation)
	ErrInvalidScope      = fmt.Errorf("%w: scope must be either all or friends", ErrValidation)
)

// Reference errors
var (
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrNotAuthenticated = errors.New("no active session")
)

// Storage errors never leave the repository package.
var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrCorruptRecord = errors.New("corrupt record")
)
