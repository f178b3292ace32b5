package aggregates

// CollectionKind says how a root relates to its dependent collection.
type CollectionKind string

const (
	// CollectionOwned children live and die with their root.
	CollectionOwned CollectionKind = "owned"
	// CollectionShared references outlive any root; only association links are reconciled.
	CollectionShared CollectionKind = "shared"
)

func (k CollectionKind) Valid() bool {
	return k == CollectionOwned || k == CollectionShared
}

// Contract describes aggregate-level policy expectations. Every aggregate
// write opens its own unit of work, joining an ambient one when present.
type Contract struct {
	Name       string
	Collection CollectionKind
	Notes      string
}

// Aggregate is the common marker for all aggregate contracts.
// Implementations should return a stable contract description.
type Aggregate interface {
	Contract() Contract
}
