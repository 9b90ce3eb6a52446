package model

import "github.com/google/uuid"

// NewID creates a new unique id string.
func NewID() string {
	return uuid.New().String()
}
