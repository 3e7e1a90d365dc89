package model

import "github.com/google/uuid"

// NewID creates a new random bookmark identifier.
func NewID() string {
	return uuid.New().String()
}
