// Package balancer implements cross-month settlement balancing.
//
// A settlement spanning several calendar months is remitted by the
// marketplace as deferred balances: each earlier month nets to zero and the
// whole amount lands with the final month. Apply reproduces that shape while
// keeping the draft's grand total unchanged.
package balancer

import (
	"github.com/progami/settleflow/internal/domain"
	"github.com/progami/settleflow/internal/usecase/classifier"
)

// Apply forces every non-final segment to net zero by adding an offsetting
// deferred-balance memo line, and carries the removed amounts to the final
// segment as one line. Single-segment drafts are left untouched.
// Must run only after the draft passed the totals invariant check.
func Apply(draft *domain.SettlementDraft) {
	if len(draft.Segments) < 2 {
		return
	}

	var carry domain.Cents
	for _, seg := range draft.Segments[:len(draft.Segments)-1] {
		total := seg.Total()
		if total == 0 {
			continue
		}
		seg.MemoTotals[classifier.MemoDeferred] += -total
		carry += total
	}

	if carry != 0 {
		final := draft.Segments[len(draft.Segments)-1]
		final.MemoTotals[classifier.MemoDeferred] += carry
	}
}
