package vault

import (
	"errors"
)

var (
	// ErrUnauthorized is returned when the caller does not hold the owner
	// capability, or when a deposit sender has no staged records.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState is returned on pause/unpause misuse and when a
	// deposit is attempted while the vault is paused.
	ErrInvalidState = errors.New("invalid state")

	// ErrIndexOutOfRange is returned when an edit or delete references a
	// position outside the staker's current queue.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidArgument is returned on malformed input: mismatched or
	// empty record batches, over-limit counts, wrong byte lengths and
	// wrong deposit values.
	ErrInvalidArgument = errors.New("invalid argument")
)
