package domain

import "errors"

// Sentinel errors for the reconciliation engine.
// Failure sites wrap these with fmt.Errorf("%w: ...") context; callers test
// with errors.Is. None of them are retried internally: a failed settlement is
// blocked from posting rather than committed partially.
var (
	// Malformed input.
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrMissingTimestamp = errors.New("missing required timestamp")
	ErrInvoiceMismatch  = errors.New("audit rows span multiple invoices")
	ErrUnknownSKU       = errors.New("unknown sku")

	// Unhandled classification. Always loud, never a default.
	ErrUnhandledEventType   = errors.New("unhandled event type")
	ErrUnhandledDescription = errors.New("unhandled line description")

	// Reconciliation invariant violations.
	ErrTotalsMismatch        = errors.New("segment totals do not match settlement total")
	ErrUnbalancedEntry       = errors.New("journal entry debits do not equal credits")
	ErrMissingAccountMapping = errors.New("no account mapping for memo")

	// Allocation impossible.
	ErrNoWeights = errors.New("no usable allocation weights")
)
