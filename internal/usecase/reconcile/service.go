package reconcile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/progami/settleflow/internal/domain"
	"github.com/progami/settleflow/internal/usecase/balancer"
	"github.com/progami/settleflow/internal/usecase/journal"
	"github.com/progami/settleflow/internal/usecase/pnl"
	"github.com/progami/settleflow/internal/usecase/segmenter"
)

// Result is the full output of reconciling one settlement.
// Hash is the processing hash: recomputing on identical input yields the
// same hash, so callers can detect source drift between a previewed draft
// and the moment it is committed to the ledger.
type Result struct {
	Draft   *domain.SettlementDraft
	Entries []domain.JournalEntryDraft
	Pnl     *domain.PnlAllocation
	Hash    string
}

// Service runs the settlement reconciliation pipeline for one event group.
// The pipeline is pure computation after the feed call; concurrent
// invocations for different settlements are safe.
type Service struct {
	feed      domain.EventFeed
	segmenter *segmenter.Segmenter
	journals  *journal.Builder
	pnl       *pnl.Allocator
	log       zerolog.Logger
}

// NewService creates a new reconciliation Service.
func NewService(
	feed domain.EventFeed,
	seg *segmenter.Segmenter,
	journals *journal.Builder,
	pnlAllocator *pnl.Allocator,
	log zerolog.Logger,
) *Service {
	return &Service{
		feed:      feed,
		segmenter: seg,
		journals:  journals,
		pnl:       pnlAllocator,
		log:       log.With().Str("component", "reconcile").Logger(),
	}
}

// Reconcile processes one settlement end to end
// Logic:
//  1. Fetch the full event list for the group (the feed guarantees
//     completeness; a partial feed would break the totals invariant)
//  2. Segment by calendar month and verify the totals invariant
//  3. Roll non-final months to zero, carrying the balance forward
//  4. Build one balanced journal entry per segment
//  5. Attribute audit rows to PnL buckets per brand and SKU
//  6. Hash the outputs for the idempotent-recompute contract
//
// Reconciliation is all-or-nothing: any failure propagates verbatim and no
// partial result is returned.
func (s *Service) Reconcile(ctx context.Context, group domain.EventGroup) (*Result, error) {
	log := s.log.With().
		Str("run_id", uuid.New().String()).
		Str("group_id", group.ID).
		Logger()

	events, err := s.feed.ListEventsByGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching events for group %s: %w", group.ID, err)
	}

	draft, err := s.segmenter.Build(group, events)
	if err != nil {
		return nil, err
	}

	balancer.Apply(draft)

	entries, err := s.journals.Build(draft)
	if err != nil {
		return nil, err
	}

	result := &Result{Draft: draft, Entries: entries}

	if rows := draft.Rows(); len(rows) > 0 {
		allocation, err := s.pnl.Allocate(rows)
		if err != nil {
			return nil, err
		}
		result.Pnl = allocation
	}

	hash, err := processingHash(draft, entries)
	if err != nil {
		return nil, err
	}
	result.Hash = hash

	log.Info().
		Int("events", len(events)).
		Int("segments", len(draft.Segments)).
		Int("entries", len(entries)).
		Str("hash", hash).
		Msg("settlement reconciled")

	return result, nil
}

// processingHash digests the canonical JSON encoding of the draft and its
// journal entries. JSON object keys marshal in sorted order and audit rows
// are pre-sorted, so identical input always hashes identically.
func processingHash(draft *domain.SettlementDraft, entries []domain.JournalEntryDraft) (string, error) {
	digest := sha256.New()
	enc := json.NewEncoder(digest)
	if err := enc.Encode(draft); err != nil {
		return "", err
	}
	if err := enc.Encode(entries); err != nil {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
