package balancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progami/settleflow/internal/domain"
	"github.com/progami/settleflow/internal/usecase/classifier"
)

func segment(totals map[string]domain.Cents) *domain.Segment {
	return &domain.Segment{MemoTotals: totals}
}

func TestApply_RollsNonFinalSegmentsToZero(t *testing.T) {
	draft := &domain.SettlementDraft{
		OriginalTotal: 200,
		Segments: []*domain.Segment{
			segment(map[string]domain.Cents{"Amazon Sales": 300}),
			segment(map[string]domain.Cents{"Amazon Refunds": -100}),
		},
	}

	Apply(draft)

	first, final := draft.Segments[0], draft.Segments[1]

	assert.Equal(t, domain.Cents(0), first.Total())
	assert.Equal(t, domain.Cents(-300), first.MemoTotals[classifier.MemoDeferred])

	assert.Equal(t, domain.Cents(200), final.Total())
	assert.Equal(t, domain.Cents(300), final.MemoTotals[classifier.MemoDeferred])

	// The draft still reconciles to the settlement total as a whole.
	var total domain.Cents
	for _, seg := range draft.Segments {
		total += seg.Total()
	}
	assert.Equal(t, draft.OriginalTotal, total)
}

func TestApply_ThreeSegments(t *testing.T) {
	draft := &domain.SettlementDraft{
		OriginalTotal: 450,
		Segments: []*domain.Segment{
			segment(map[string]domain.Cents{"Amazon Sales": 500}),
			segment(map[string]domain.Cents{"Amazon Refunds": -200}),
			segment(map[string]domain.Cents{"Amazon Sales": 150}),
		},
	}

	Apply(draft)

	assert.Equal(t, domain.Cents(0), draft.Segments[0].Total())
	assert.Equal(t, domain.Cents(0), draft.Segments[1].Total())
	require.Equal(t, domain.Cents(450), draft.Segments[2].Total())
	assert.Equal(t, domain.Cents(300), draft.Segments[2].MemoTotals[classifier.MemoDeferred])
}

func TestApply_SingleSegmentIsUntouched(t *testing.T) {
	draft := &domain.SettlementDraft{
		OriginalTotal: 300,
		Segments: []*domain.Segment{
			segment(map[string]domain.Cents{"Amazon Sales": 300}),
		},
	}

	Apply(draft)

	assert.Equal(t, domain.Cents(300), draft.Segments[0].Total())
	assert.NotContains(t, draft.Segments[0].MemoTotals, classifier.MemoDeferred)
}

func TestApply_ZeroTotalSegmentGetsNoRollLine(t *testing.T) {
	draft := &domain.SettlementDraft{
		OriginalTotal: 100,
		Segments: []*domain.Segment{
			segment(map[string]domain.Cents{"Amazon Sales": 50, "Amazon Refunds": -50}),
			segment(map[string]domain.Cents{"Amazon Sales": 100}),
		},
	}

	Apply(draft)

	assert.NotContains(t, draft.Segments[0].MemoTotals, classifier.MemoDeferred)
	assert.NotContains(t, draft.Segments[1].MemoTotals, classifier.MemoDeferred)
	assert.Equal(t, domain.Cents(100), draft.Segments[1].Total())
}
