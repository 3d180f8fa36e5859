package domain

import "time"

// Segment is the slice of a settlement falling inside one calendar month.
// DocNumber is deterministically derived from the region, the segment's date
// range and its sequence, and acts as an idempotency key downstream.
type Segment struct {
	Sequence   int
	YearMonth  string // "2006-01"
	StartDay   time.Time
	EndDay     time.Time
	TxnDate    time.Time
	DocNumber  string
	MemoTotals map[string]Cents
	AuditRows  []AuditRow
}

// Total sums the segment's memo totals.
func (s *Segment) Total() Cents {
	var total Cents
	for _, cents := range s.MemoTotals {
		total += cents
	}
	return total
}

// AuditRow is one economically meaningful settlement line, kept for
// profitability attribution and audit trails.
type AuditRow struct {
	InvoiceID string
	Market    string
	Date      time.Time
	OrderID   string
	SKU       string
	Quantity  int64
	Memo      string
	Net       Cents
}

// SettlementDraft is the segmented view of one settlement, ready for preview
// or journal generation. Before cross-month balancing the sum of all segment
// memo totals equals OriginalTotal exactly.
type SettlementDraft struct {
	SettlementID  string
	EventGroupID  string
	TimeZone      string
	OriginalTotal Cents
	Segments      []*Segment
}

// Rows flattens the audit rows of every segment in segment order.
func (d *SettlementDraft) Rows() []AuditRow {
	var rows []AuditRow
	for _, seg := range d.Segments {
		rows = append(rows, seg.AuditRows...)
	}
	return rows
}
