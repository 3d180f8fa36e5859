package segmenter

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/progami/settleflow/internal/domain"
	"github.com/progami/settleflow/internal/usecase/classifier"
)

// Segmenter splits a settlement window into per-calendar-month segments and
// assigns every classified event line to exactly one of them.
type Segmenter struct {
	zone   *time.Location
	region string
	log    zerolog.Logger
}

// New creates a new Segmenter for the given local time zone and marketplace
// region code. The region becomes part of every segment's doc number.
func New(zone *time.Location, region string, log zerolog.Logger) *Segmenter {
	return &Segmenter{
		zone:   zone,
		region: region,
		log:    log.With().Str("component", "segmenter").Logger(),
	}
}

// Build segments one settlement into calendar months
// Logic:
//  1. Convert the group's UTC window to local dates
//  2. Clamp negative settlements that spill into a later month back to the
//     start month's end (the marketplace's own boundary convention)
//  3. Create one segment per calendar month in the window
//  4. Classify every event component into a memo and add it to its month's
//     totals; undated rows fall to the final segment
//  5. Verify the segment totals reconcile to the settlement total exactly
func (s *Segmenter) Build(group domain.EventGroup, events []domain.FinancialEvent) (*domain.SettlementDraft, error) {
	if group.StartUTC.IsZero() || group.EndUTC.IsZero() {
		return nil, fmt.Errorf("%w: event group %s has no settlement window", domain.ErrMissingTimestamp, group.ID)
	}
	if group.EndUTC.Before(group.StartUTC) {
		return nil, fmt.Errorf("%w: event group %s window ends before it starts", domain.ErrMissingTimestamp, group.ID)
	}

	startDay := dayOf(group.StartUTC.In(s.zone))
	endDay := dayOf(group.EndUTC.In(s.zone))

	// Negative settlements that cross a UTC month boundary are reported by
	// the marketplace against the start month only; mirror that by clamping
	// the window. Events dated past the clamp still land in the last segment.
	if group.OriginalTotal < 0 && crossesMonthUTC(group.StartUTC, group.EndUTC) {
		clamped := monthEnd(startDay)
		s.log.Warn().
			Str("group_id", group.ID).
			Time("end", endDay).
			Time("clamped_end", clamped).
			Msg("negative settlement spans months, clamping window to start month")
		endDay = clamped
	}

	draft := &domain.SettlementDraft{
		SettlementID:  group.SettlementID,
		EventGroupID:  group.ID,
		TimeZone:      s.zone.String(),
		OriginalTotal: group.OriginalTotal,
	}

	// One segment per calendar month spanned by the window.
	index := make(map[string]int)
	for cursor := monthStart(startDay); !cursor.After(endDay); cursor = cursor.AddDate(0, 1, 0) {
		segStart := cursor
		if segStart.Before(startDay) {
			segStart = startDay
		}
		segEnd := monthEnd(cursor)
		if segEnd.After(endDay) {
			segEnd = endDay
		}

		seq := len(draft.Segments) + 1
		seg := &domain.Segment{
			Sequence:   seq,
			YearMonth:  cursor.Format("2006-01"),
			StartDay:   segStart,
			EndDay:     segEnd,
			TxnDate:    segEnd,
			DocNumber:  docNumber(s.region, segStart, segEnd, seq),
			MemoTotals: make(map[string]domain.Cents),
		}
		index[seg.YearMonth] = len(draft.Segments)
		draft.Segments = append(draft.Segments, seg)
	}

	last := len(draft.Segments) - 1
	for _, event := range events {
		target := last
		var eventDay time.Time
		if event.PostedAt != nil {
			eventDay = dayOf(event.PostedAt.In(s.zone))
			if idx, ok := index[eventDay.Format("2006-01")]; ok {
				target = idx
			} else if eventDay.Before(draft.Segments[0].StartDay) {
				target = 0
			}
			// Dates past the clamped end stay on the final segment.
		}

		seg := draft.Segments[target]
		if eventDay.IsZero() {
			eventDay = seg.EndDay
		}

		for _, component := range event.Components {
			memo, significant, err := classifier.Memo(event.Kind, component.Kind, component.Type)
			if err != nil {
				return nil, err
			}
			if !significant {
				continue
			}

			seg.MemoTotals[memo] += component.Amount
			seg.AuditRows = append(seg.AuditRows, domain.AuditRow{
				InvoiceID: group.SettlementID,
				Market:    s.region,
				Date:      eventDay,
				OrderID:   event.OrderID,
				SKU:       component.SKU,
				Quantity:  component.Quantity,
				Memo:      memo,
				Net:       component.Amount,
			})
		}
	}

	// Emitted rows are explicitly sorted so recomputation is byte-identical.
	var total domain.Cents
	for _, seg := range draft.Segments {
		sortAuditRows(seg.AuditRows)
		total += seg.Total()
	}

	if total != group.OriginalTotal {
		return nil, fmt.Errorf("%w: computed %d, settlement reports %d",
			domain.ErrTotalsMismatch, total, group.OriginalTotal)
	}

	s.log.Debug().
		Str("group_id", group.ID).
		Int("segments", len(draft.Segments)).
		Int64("total", int64(total)).
		Msg("settlement segmented")

	return draft, nil
}

func sortAuditRows(rows []domain.AuditRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.OrderID != b.OrderID {
			return a.OrderID < b.OrderID
		}
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		if a.Memo != b.Memo {
			return a.Memo < b.Memo
		}
		return a.Net < b.Net
	})
}

// docNumber derives the deterministic idempotency key for one segment.
func docNumber(region string, start, end time.Time, sequence int) string {
	return fmt.Sprintf("AMZ-%s-%s-%s-%d",
		region, start.Format("20060102"), end.Format("20060102"), sequence)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func monthStart(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
}

func monthEnd(day time.Time) time.Time {
	return monthStart(day).AddDate(0, 1, -1)
}

func crossesMonthUTC(start, end time.Time) bool {
	s, e := start.UTC(), end.UTC()
	return e.Year() > s.Year() || (e.Year() == s.Year() && e.Month() > s.Month())
}
