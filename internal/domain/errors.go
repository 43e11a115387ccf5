package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is wrapped by every rejected status change.
var ErrInvalidTransition = errors.New("invalid status transition")

func transitionError(entity string, from, to any) error {
	return fmt.Errorf("%s %v -> %v: %w", entity, from, to, ErrInvalidTransition)
}
