package models

import (
	"time"

	"github.com/ospinae/termledger/internal/money"
)

// ConceptKind selects how a concept's stored value turns into a commission.
type ConceptKind string

const (
	// ConceptFixed charges the stored value (minor units) regardless of
	// the transaction amount.
	ConceptFixed ConceptKind = "FIXED"

	// ConceptRate charges amount × value/money.RateScale, rounded half-up
	// to the cent.
	ConceptRate ConceptKind = "RATE"
)

// Valid reports whether k is a known concept kind.
func (k ConceptKind) Valid() bool {
	return k == ConceptFixed || k == ConceptRate
}

// Concept is a named commission rule. Value is minor units for FIXED
// concepts and 1e-4 fraction units for RATE concepts.
type Concept struct {
	ID        int64
	Name      string
	Kind      ConceptKind
	Value     int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidValue reports whether the concept's stored value is well formed for
// its kind.
func (c *Concept) ValidValue() bool {
	switch c.Kind {
	case ConceptFixed:
		return money.ValidFixed(c.Value)
	case ConceptRate:
		return money.ValidRate(c.Value)
	default:
		return false
	}
}
