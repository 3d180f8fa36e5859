package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJournalEntryDraft_ValidBalancedEntry(t *testing.T) {
	entry := &JournalEntryDraft{
		TxnDate:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		DocNumber: "AMZ-UK-20240515-20240531-1",
		Lines: []JournalLine{
			{AccountKey: "4000", Type: EntryTypeCredit, Amount: 10000, Description: "Amazon Sales"},
			{AccountKey: "6000", Type: EntryTypeDebit, Amount: 1500, Description: "Amazon Seller Fees - Commission"},
			{AccountKey: "1200", Type: EntryTypeDebit, Amount: 8500, Description: "Amazon settlement deposit"},
		},
	}

	assert.NoError(t, entry.Validate())
}

func TestJournalEntryDraft_UnbalancedEntryFails(t *testing.T) {
	entry := &JournalEntryDraft{
		DocNumber: "AMZ-UK-20240515-20240531-1",
		Lines: []JournalLine{
			{AccountKey: "4000", Type: EntryTypeCredit, Amount: 10000},
			{AccountKey: "6000", Type: EntryTypeDebit, Amount: 1500},
		},
	}

	assert.ErrorIs(t, entry.Validate(), ErrUnbalancedEntry)
}

func TestJournalEntryDraft_EmptyEntryFails(t *testing.T) {
	entry := &JournalEntryDraft{}
	assert.Error(t, entry.Validate())
}

func TestJournalEntryDraft_NonPositiveAmountFails(t *testing.T) {
	entry := &JournalEntryDraft{
		Lines: []JournalLine{
			{AccountKey: "4000", Type: EntryTypeCredit, Amount: 0},
		},
	}
	assert.Error(t, entry.Validate())
}

func TestJournalEntryDraft_UnknownLineTypeFails(t *testing.T) {
	entry := &JournalEntryDraft{
		Lines: []JournalLine{
			{AccountKey: "4000", Type: "TRANSFER", Amount: 100},
		},
	}
	assert.Error(t, entry.Validate())
}
