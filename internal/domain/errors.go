package domain

import (
	"errors"
	"fmt"
)

// ErrNoMedia is returned when a creative yields no usable media URL on
// any of the known field layouts.
var ErrNoMedia = errors.New("creative has no media candidates")

// AuthError marks an upstream 401/403; it aborts the whole run.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("upstream auth rejected (status %d): %s", e.Status, e.Message)
}
