package util

import "github.com/google/uuid"

// NewID returns a random UUID string, used for chat message and
// request-correlation identifiers.
func NewID() string {
	return uuid.NewString()
}
