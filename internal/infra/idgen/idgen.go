// Package idgen generates task identifiers.
package idgen

import (
	"github.com/google/uuid"

	"github.com/runoshun/duelist/internal/domain"
)

// UUID issues random (version 4) UUIDs.
type UUID struct{}

// New returns a UUID generator.
func New() UUID {
	return UUID{}
}

// NewID returns a new random identifier.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Ensure UUID implements IDGenerator.
var _ domain.IDGenerator = UUID{}
