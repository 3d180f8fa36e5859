package journal

import (
	"fmt"
	"sort"

	"github.com/progami/settleflow/internal/domain"
)

// Builder turns balanced settlement segments into double-entry journal drafts.
type Builder struct {
	accounts       map[string]string // memo → external account key
	bankAccount    string
	payableAccount string
}

// NewBuilder creates a new Builder with the injected memo→account map and the
// bank/payable accounts used for the settlement plug line.
func NewBuilder(accounts map[string]string, bankAccount, payableAccount string) *Builder {
	return &Builder{
		accounts:       accounts,
		bankAccount:    bankAccount,
		payableAccount: payableAccount,
	}
}

// Build emits one journal entry per segment
// Logic:
//  1. One line per non-zero memo total, positive → CREDIT, negative → DEBIT
//  2. Resolve each memo to its external account; an unmapped memo is fatal
//  3. On the final segment only, plug the settlement total against the bank
//     account (funds received) or the payable account (funds owed)
//  4. Validate that every entry balances before returning it
func (b *Builder) Build(draft *domain.SettlementDraft) ([]domain.JournalEntryDraft, error) {
	entries := make([]domain.JournalEntryDraft, 0, len(draft.Segments))

	for i, seg := range draft.Segments {
		entry := domain.JournalEntryDraft{
			TxnDate:   seg.TxnDate,
			DocNumber: seg.DocNumber,
			PrivateNote: fmt.Sprintf("Amazon settlement %s segment %d (%s)",
				draft.SettlementID, seg.Sequence, seg.YearMonth),
		}

		// Memos are emitted in name order for reproducible output.
		memos := make([]string, 0, len(seg.MemoTotals))
		for memo := range seg.MemoTotals {
			memos = append(memos, memo)
		}
		sort.Strings(memos)

		for _, memo := range memos {
			total := seg.MemoTotals[memo]
			if total == 0 {
				continue
			}

			account, ok := b.accounts[memo]
			if !ok {
				return nil, fmt.Errorf("%w: %q", domain.ErrMissingAccountMapping, memo)
			}

			line := domain.JournalLine{
				AccountKey:  account,
				Description: memo,
			}
			// Positive memo amounts reduce the marketplace payable (income);
			// negative ones are expenses.
			if total > 0 {
				line.Type = domain.EntryTypeCredit
				line.Amount = total
			} else {
				line.Type = domain.EntryTypeDebit
				line.Amount = -total
			}
			entry.Lines = append(entry.Lines, line)
		}

		// Only the final segment settles against the bank or payable account.
		if i == len(draft.Segments)-1 && draft.OriginalTotal != 0 {
			if draft.OriginalTotal > 0 {
				entry.Lines = append(entry.Lines, domain.JournalLine{
					AccountKey:  b.bankAccount,
					Type:        domain.EntryTypeDebit,
					Amount:      draft.OriginalTotal,
					Description: "Amazon settlement deposit",
				})
			} else {
				entry.Lines = append(entry.Lines, domain.JournalLine{
					AccountKey:  b.payableAccount,
					Type:        domain.EntryTypeCredit,
					Amount:      -draft.OriginalTotal,
					Description: "Amazon settlement balance due",
				})
			}
		}

		// A month with no activity produces no posting at all.
		if len(entry.Lines) == 0 {
			continue
		}

		if err := entry.Validate(); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
