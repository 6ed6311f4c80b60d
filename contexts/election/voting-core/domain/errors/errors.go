package errors

import (
	"errors"
	"fmt"
)

// Category roots. Specific errors wrap one of these so callers can branch on
// the category with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrAuthFailed      = errors.New("invalid username or password")
	ErrPersistence     = errors.New("persistence failure")
	ErrDecryption      = errors.New("credential decryption failed")
)

var (
	ErrInvalidEventName     = fmt.Errorf("%w: event name is required", ErrInvalidArgument)
	ErrInvalidEventID       = fmt.Errorf("%w: event id is required", ErrInvalidArgument)
	ErrInvalidCandidateName = fmt.Errorf("%w: candidate name is required", ErrInvalidArgument)
	ErrInvalidCandidateID   = fmt.Errorf("%w: candidate id must be a positive integer", ErrInvalidArgument)
	ErrPhotoTooLarge        = fmt.Errorf("%w: candidate photo is too large", ErrInvalidArgument)
	ErrInvalidAccountCount  = fmt.Errorf("%w: account count is out of range", ErrInvalidArgument)
	ErrInvalidUserID        = fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	ErrInvalidCredentials   = fmt.Errorf("%w: username and password are required", ErrInvalidArgument)

	ErrEventNotFound     = fmt.Errorf("event %w", ErrNotFound)
	ErrCandidateNotFound = fmt.Errorf("candidate %w", ErrNotFound)
	ErrAccountNotFound   = fmt.Errorf("account %w", ErrNotFound)

	ErrAccountConflict = fmt.Errorf("%w: account id or username already taken", ErrPersistence)
	ErrEventConflict   = fmt.Errorf("%w: event id already taken", ErrPersistence)
)
