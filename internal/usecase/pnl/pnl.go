package pnl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/progami/settleflow/internal/domain"
	"github.com/progami/settleflow/internal/usecase/allocator"
	"github.com/progami/settleflow/internal/usecase/classifier"
)

// Allocator classifies settlement audit rows into PnL buckets and attributes
// them to brands and SKUs by unit-sales weight.
type Allocator struct {
	brands domain.BrandResolver
}

// NewAllocator creates a new Allocator using the given SKU→brand resolver.
func NewAllocator(brands domain.BrandResolver) *Allocator {
	return &Allocator{brands: brands}
}

// outcome is the result of one description rule: a bucket, or a skip for
// lines that carry no PnL meaning (revenue, taxes, deferred balances).
type outcome struct {
	bucket domain.PnlBucket
	skip   bool
}

// rule matches a row description. Rules are ordered most-specific-first:
// AWD-flagged lines must route to warehousing before the generic FBA and
// storage rules get a chance.
type rule struct {
	match func(string) bool
	out   outcome
}

func prefix(p string) func(string) bool {
	return func(desc string) bool { return strings.HasPrefix(desc, p) }
}

func contains(sub string) func(string) bool {
	return func(desc string) bool { return strings.Contains(desc, sub) }
}

func oneOf(descs ...string) func(string) bool {
	set := make(map[string]struct{}, len(descs))
	for _, d := range descs {
		set[d] = struct{}{}
	}
	return func(desc string) bool {
		_, ok := set[desc]
		return ok
	}
}

var rules = []rule{
	// Revenue, tax, and carry lines feed weights or the ledger, not buckets.
	{oneOf(
		classifier.MemoSales,
		classifier.MemoShippingIncome,
		classifier.MemoGiftWrapIncome,
		classifier.MemoSalesTax,
		classifier.MemoRefunds,
		classifier.MemoSalesTaxRefunded,
		classifier.MemoFacilitatorTax,
		classifier.MemoOtherAdjustments,
		classifier.MemoAdhocDisbursed,
		classifier.MemoDebtRecovery,
		classifier.MemoDeferred,
	), outcome{skip: true}},

	{contains("AWD"), outcome{bucket: domain.BucketAWDWarehousing}},
	{contains("Storage"), outcome{bucket: domain.BucketStorageFees}},
	{prefix("Amazon Seller Fees"), outcome{bucket: domain.BucketSellerFees}},
	{prefix("Amazon Subscription Fees"), outcome{bucket: domain.BucketSellerFees}},
	{prefix("Amazon FBA"), outcome{bucket: domain.BucketFBAFees}},
	{prefix("Amazon Advertising"), outcome{bucket: domain.BucketAdvertising}},
	{prefix("Amazon Promotions"), outcome{bucket: domain.BucketPromotions}},
	{contains("Reimbursement"), outcome{bucket: domain.BucketReimbursement}},
}

func classify(desc string) (outcome, error) {
	for _, r := range rules {
		if r.match(desc) {
			return r.out, nil
		}
	}
	return outcome{}, fmt.Errorf("%w: %q", domain.ErrUnhandledDescription, desc)
}

// Allocate attributes one settlement's audit rows to brands and SKUs
// Logic:
//  1. All rows must share one invoice id
//  2. Pass 1: sales-principal rows with a SKU and non-zero quantity build
//     |quantity| weight maps per brand and per (brand, SKU)
//  3. Pass 2: classify every row into a bucket (or skip); SKU-tagged rows
//     attribute to that SKU's brand directly, SKU-less rows split across
//     brands and then SKUs by unit-sales weight, preserving sign
//
// A SKU-less bucket row with zero qualifying weight is a hard failure — an
// even split would hide missing sales data.
func (a *Allocator) Allocate(rows []domain.AuditRow) (*domain.PnlAllocation, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no audit rows", domain.ErrInvoiceMismatch)
	}

	invoiceID := rows[0].InvoiceID
	for _, row := range rows {
		if row.InvoiceID != invoiceID {
			return nil, fmt.Errorf("%w: %q and %q", domain.ErrInvoiceMismatch, invoiceID, row.InvoiceID)
		}
	}

	// Pass 1: unit-sales weights.
	brandUnits := make(map[string]int64)
	skuUnits := make(map[string]map[string]int64) // brand → sku → units
	for _, row := range rows {
		if row.Memo != classifier.MemoSales || row.SKU == "" || row.Quantity == 0 {
			continue
		}
		brand, err := a.brands.Brand(row.SKU)
		if err != nil {
			return nil, err
		}
		units := row.Quantity
		if units < 0 {
			units = -units
		}
		brandUnits[brand] += units
		if skuUnits[brand] == nil {
			skuUnits[brand] = make(map[string]int64)
		}
		skuUnits[brand][row.SKU] += units
	}

	result := &domain.PnlAllocation{
		InvoiceID: invoiceID,
		ByBrand:   make(map[domain.PnlBucket]map[string]domain.Cents),
		BySKU:     make(map[domain.PnlBucket]map[string]map[string]domain.Cents),
	}

	// Pass 2: bucket classification and attribution.
	for _, row := range rows {
		out, err := classify(row.Memo)
		if err != nil {
			return nil, err
		}
		if out.skip || row.Net == 0 {
			continue
		}

		if row.SKU != "" {
			brand, err := a.brands.Brand(row.SKU)
			if err != nil {
				return nil, err
			}
			result.Add(out.bucket, brand, row.SKU, row.Net)
			continue
		}

		brandShares, err := allocator.Split(row.Net, weightsOf(brandUnits))
		if err != nil {
			return nil, fmt.Errorf("allocating %q across brands: %w", row.Memo, err)
		}
		for brand, share := range brandShares {
			if share == 0 {
				continue
			}
			skuShares, err := allocator.Split(share, weightsOf(skuUnits[brand]))
			if err != nil {
				return nil, fmt.Errorf("allocating %q within brand %s: %w", row.Memo, brand, err)
			}
			for sku, cents := range skuShares {
				result.Add(out.bucket, brand, sku, cents)
			}
		}
	}

	return result, nil
}

// weightsOf flattens a unit map into key-sorted allocator weights so that
// rounding tie-breaks are reproducible.
func weightsOf(units map[string]int64) []allocator.Weight {
	keys := make([]string, 0, len(units))
	for key := range units {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	weights := make([]allocator.Weight, 0, len(keys))
	for _, key := range keys {
		weights = append(weights, allocator.Weight{Key: key, Units: units[key]})
	}
	return weights
}
