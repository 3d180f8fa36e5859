package domain

import "context"

// EventFeed defines the interface to the upstream marketplace-finance
// collaborator. Implementations must return the complete event list for a
// group: a partially fetched feed breaks the totals invariant downstream.
type EventFeed interface {
	// ListEventGroups retrieves the settlement event-group headers
	ListEventGroups(ctx context.Context) ([]EventGroup, error)

	// ListEventsByGroup retrieves every financial event of one group
	ListEventsByGroup(ctx context.Context, groupID string) ([]FinancialEvent, error)
}

// BrandResolver maps a marketplace SKU to the brand that owns it.
// Lookups are in-memory; a SKU absent from the reference data is an error,
// never a silent fallback brand.
type BrandResolver interface {
	Brand(sku string) (string, error)
}
