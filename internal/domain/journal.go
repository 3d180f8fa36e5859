package domain

import (
	"errors"
	"fmt"
	"time"
)

// EntryType represents the side of a journal line
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

// JournalLine represents a single line in a journal entry draft
type JournalLine struct {
	AccountKey  string
	Type        EntryType // 'DEBIT' or 'CREDIT'
	Amount      Cents     // ABSOLUTE VALUE (Always Positive)
	Description string
}

// JournalEntryDraft represents one ledger posting for a settlement segment,
// keyed by the segment's deterministic DocNumber
type JournalEntryDraft struct {
	TxnDate     time.Time
	DocNumber   string
	PrivateNote string
	Lines       []JournalLine
}

// Validate ensures the entry adheres to double-entry rules
// Returns an error if validation fails
// CRITICAL: Ensures sum of debits equals sum of credits
func (e *JournalEntryDraft) Validate() error {
	if len(e.Lines) == 0 {
		return errors.New("journal entry must have at least one line")
	}

	var totalDebits Cents
	var totalCredits Cents

	for _, line := range e.Lines {
		// Validate line amount is positive (absolute value)
		if line.Amount <= 0 {
			return errors.New("journal line amount must be positive (absolute value)")
		}

		if line.AccountKey == "" {
			return errors.New("journal line account key cannot be empty")
		}

		switch line.Type {
		case EntryTypeDebit:
			totalDebits += line.Amount
		case EntryTypeCredit:
			totalCredits += line.Amount
		default:
			return errors.New("journal line type must be DEBIT or CREDIT")
		}
	}

	if totalDebits != totalCredits {
		return fmt.Errorf("%w: %s debits %d, credits %d",
			ErrUnbalancedEntry, e.DocNumber, totalDebits, totalCredits)
	}

	return nil
}
