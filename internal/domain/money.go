package domain

import (
	"fmt"
	"math"
	"regexp"

	"github.com/shopspring/decimal"
)

// Cents is a money amount in signed integer minor units.
// Money is never represented as floating point past the parse boundary.
type Cents int64

// RawMoney mirrors the feed's heterogeneous money encodings: some rows carry
// a native number, others a signed decimal string. At most one field is set.
type RawMoney struct {
	Number *float64
	Text   string
}

// amountPattern is the only accepted shape for textual amounts.
var amountPattern = regexp.MustCompile(`^-?\d+(\.\d{1,2})?$`)

// ParseMoney converts a raw feed amount into integer minor units.
// Textual amounts must match amountPattern and convert exactly via decimal;
// numeric amounts must be finite and round to the nearest cent, halves away
// from zero. A value with no usable field is rejected.
func ParseMoney(raw RawMoney) (Cents, error) {
	if raw.Text != "" {
		if !amountPattern.MatchString(raw.Text) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw.Text)
		}
		d, err := decimal.NewFromString(raw.Text)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw.Text)
		}
		// Exact: the pattern caps the input at two decimal places.
		return Cents(d.Shift(2).IntPart()), nil
	}

	if raw.Number != nil {
		f := *raw.Number
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: non-finite number", ErrInvalidAmount)
		}
		return Cents(math.Round(f * 100)), nil
	}

	return 0, fmt.Errorf("%w: no amount field present", ErrInvalidAmount)
}
