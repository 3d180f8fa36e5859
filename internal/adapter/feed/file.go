// Package feed serves a materialized marketplace financial-event feed from a
// JSON export. The engine never talks to the live marketplace API; callers
// fetch the paginated feed to completion first and hand the whole document
// over, which keeps the totals invariant intact.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/progami/settleflow/internal/domain"
)

// amount decodes the feed's heterogeneous money encodings (JSON number or
// decimal string) into exact minor units through the money parser.
type amount struct {
	cents domain.Cents
}

func (a *amount) UnmarshalJSON(data []byte) error {
	var raw domain.RawMoney
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw.Text); err != nil {
			return err
		}
	} else {
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		raw.Number = &n
	}

	cents, err := domain.ParseMoney(raw)
	if err != nil {
		return err
	}
	a.cents = cents
	return nil
}

type componentDoc struct {
	Kind     string `json:"kind"`
	Type     string `json:"type"`
	SKU      string `json:"sku,omitempty"`
	Quantity int64  `json:"quantity,omitempty"`
	Amount   amount `json:"amount"`
}

type eventDoc struct {
	Kind       string         `json:"kind"`
	PostedAt   *time.Time     `json:"postedAt,omitempty"`
	OrderID    string         `json:"orderId,omitempty"`
	Components []componentDoc `json:"components"`
}

type groupDoc struct {
	GroupID       string     `json:"groupId"`
	SettlementID  string     `json:"settlementId"`
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	OriginalTotal amount     `json:"originalTotal"`
	Events        []eventDoc `json:"events"`
}

type document struct {
	Groups []groupDoc `json:"groups"`
}

// File is a domain.EventFeed backed by a feed export on disk.
type File struct {
	groups []domain.EventGroup
	events map[string][]domain.FinancialEvent
}

// NewFile loads a feed export and indexes its groups.
func NewFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	f := &File{events: make(map[string][]domain.FinancialEvent, len(doc.Groups))}
	for _, g := range doc.Groups {
		f.groups = append(f.groups, domain.EventGroup{
			ID:            g.GroupID,
			SettlementID:  g.SettlementID,
			StartUTC:      g.Start,
			EndUTC:        g.End,
			OriginalTotal: g.OriginalTotal.cents,
		})

		events := make([]domain.FinancialEvent, 0, len(g.Events))
		for _, e := range g.Events {
			event := domain.FinancialEvent{
				Kind:     domain.EventKind(e.Kind),
				PostedAt: e.PostedAt,
				OrderID:  e.OrderID,
			}
			for _, c := range e.Components {
				event.Components = append(event.Components, domain.Component{
					Kind:     domain.ComponentKind(c.Kind),
					Type:     c.Type,
					SKU:      c.SKU,
					Quantity: c.Quantity,
					Amount:   c.Amount.cents,
				})
			}
			events = append(events, event)
		}
		f.events[g.GroupID] = events
	}

	return f, nil
}

// ListEventGroups implements domain.EventFeed.
func (f *File) ListEventGroups(ctx context.Context) ([]domain.EventGroup, error) {
	return f.groups, nil
}

// ListEventsByGroup implements domain.EventFeed.
func (f *File) ListEventsByGroup(ctx context.Context, groupID string) ([]domain.FinancialEvent, error) {
	events, ok := f.events[groupID]
	if !ok {
		return nil, fmt.Errorf("unknown event group %q", groupID)
	}
	return events, nil
}
