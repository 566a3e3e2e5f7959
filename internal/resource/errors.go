package resource

import "errors"

// Sentinel errors returned by engine operations. Handlers map these onto
// response statuses; anything else is treated as an internal failure.
var (
	// ErrNotFound means the target record does not exist or is owned by
	// someone else. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a unique constraint was violated, e.g. a second
	// record for the same user and date.
	ErrConflict = errors.New("record already exists")
	// ErrValidation means the payload is missing a required field.
	ErrValidation = errors.New("invalid payload")
)
