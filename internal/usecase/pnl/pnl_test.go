package pnl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progami/settleflow/internal/domain"
)

// staticBrands resolves SKUs from a fixed table, like the production
// configuration does.
type staticBrands map[string]string

func (b staticBrands) Brand(sku string) (string, error) {
	brand, ok := b[sku]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSKU, sku)
	}
	return brand, nil
}

func salesRow(sku string, quantity int64, net domain.Cents) domain.AuditRow {
	return domain.AuditRow{
		InvoiceID: "S1",
		Memo:      "Amazon Sales",
		SKU:       sku,
		Quantity:  quantity,
		Net:       net,
	}
}

func feeRow(memo, sku string, net domain.Cents) domain.AuditRow {
	return domain.AuditRow{
		InvoiceID: "S1",
		Memo:      memo,
		SKU:       sku,
		Net:       net,
	}
}

func TestAllocate_SalesWeightedSplit(t *testing.T) {
	// Brand A sold 2 units, brand B sold 2 units. The SKU-tagged -10
	// commission goes straight to A; the SKU-less -20 splits -10/-10.
	brands := staticBrands{"A": "A", "B": "B"}
	rows := []domain.AuditRow{
		salesRow("A", 2, 4000),
		salesRow("B", 2, 4000),
		feeRow("Amazon Seller Fees - Commission", "A", -10),
		feeRow("Amazon Seller Fees - Commission", "", -20),
	}

	allocation, err := NewAllocator(brands).Allocate(rows)
	require.NoError(t, err)

	sellerFees := allocation.ByBrand[domain.BucketSellerFees]
	assert.Equal(t, domain.Cents(-20), sellerFees["A"])
	assert.Equal(t, domain.Cents(-10), sellerFees["B"])

	var total domain.Cents
	for _, cents := range sellerFees {
		total += cents
	}
	assert.Equal(t, domain.Cents(-30), total)
}

func TestAllocate_NestedSumsStayConsistent(t *testing.T) {
	// Two SKUs per brand; a SKU-less fee must split brand-first and then
	// SKU-level, with both layers summing exactly.
	brands := staticBrands{"A1": "Alpha", "A2": "Alpha", "B1": "Beta"}
	rows := []domain.AuditRow{
		salesRow("A1", 3, 3000),
		salesRow("A2", 2, 2000),
		salesRow("B1", 5, 5000),
		feeRow("Amazon FBA Fees - Fulfillment", "", -1001),
	}

	allocation, err := NewAllocator(brands).Allocate(rows)
	require.NoError(t, err)

	fba := allocation.ByBrand[domain.BucketFBAFees]
	var brandTotal domain.Cents
	for brand, cents := range fba {
		brandTotal += cents

		var skuTotal domain.Cents
		for _, skuCents := range allocation.BySKU[domain.BucketFBAFees][brand] {
			skuTotal += skuCents
		}
		assert.Equal(t, cents, skuTotal, "SKU breakdown of %s must sum to its allocation", brand)
	}
	assert.Equal(t, domain.Cents(-1001), brandTotal)
}

func TestAllocate_AWDRoutesBeforeGenericBuckets(t *testing.T) {
	brands := staticBrands{"A": "Alpha"}
	rows := []domain.AuditRow{
		salesRow("A", 1, 1000),
		feeRow("Amazon AWD Storage Fees", "", -500),
		feeRow("Amazon FBA Storage Fees", "", -300),
		feeRow("Amazon FBA Fees - Fulfillment", "", -200),
	}

	allocation, err := NewAllocator(brands).Allocate(rows)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(-500), allocation.ByBrand[domain.BucketAWDWarehousing]["Alpha"])
	assert.Equal(t, domain.Cents(-300), allocation.ByBrand[domain.BucketStorageFees]["Alpha"])
	assert.Equal(t, domain.Cents(-200), allocation.ByBrand[domain.BucketFBAFees]["Alpha"])
}

func TestAllocate_SkuTaggedRowBypassesWeights(t *testing.T) {
	// Direct attribution needs no sales weights for the SKU's brand.
	brands := staticBrands{"A": "Alpha", "X": "Xeno"}
	rows := []domain.AuditRow{
		salesRow("A", 1, 1000),
		feeRow("Amazon Seller Fees - Commission", "X", -99),
	}

	allocation, err := NewAllocator(brands).Allocate(rows)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(-99), allocation.ByBrand[domain.BucketSellerFees]["Xeno"])
	assert.Equal(t, domain.Cents(-99), allocation.BySKU[domain.BucketSellerFees]["Xeno"]["X"])
}

func TestAllocate_ZeroWeightIsFatal(t *testing.T) {
	// No sales rows, so a SKU-less fee has nothing to split over. An even
	// split would hide the missing reference data.
	brands := staticBrands{}
	rows := []domain.AuditRow{
		feeRow("Amazon Seller Fees - Commission", "", -100),
	}

	_, err := NewAllocator(brands).Allocate(rows)
	assert.ErrorIs(t, err, domain.ErrNoWeights)
}

func TestAllocate_InvoiceMismatchIsFatal(t *testing.T) {
	rows := []domain.AuditRow{
		salesRow("A", 1, 1000),
		{InvoiceID: "OTHER", Memo: "Amazon Sales", SKU: "A", Quantity: 1, Net: 1000},
	}

	_, err := NewAllocator(staticBrands{"A": "Alpha"}).Allocate(rows)
	assert.ErrorIs(t, err, domain.ErrInvoiceMismatch)
}

func TestAllocate_UnknownDescriptionIsFatal(t *testing.T) {
	rows := []domain.AuditRow{
		salesRow("A", 1, 1000),
		feeRow("Totally Unknown Line", "", -100),
	}

	_, err := NewAllocator(staticBrands{"A": "Alpha"}).Allocate(rows)
	assert.ErrorIs(t, err, domain.ErrUnhandledDescription)
}

func TestAllocate_UnknownSKUIsFatal(t *testing.T) {
	rows := []domain.AuditRow{
		salesRow("MISSING", 1, 1000),
	}

	_, err := NewAllocator(staticBrands{}).Allocate(rows)
	assert.ErrorIs(t, err, domain.ErrUnknownSKU)
}

func TestAllocate_RevenueRowsAreNotBucketed(t *testing.T) {
	brands := staticBrands{"A": "Alpha"}
	rows := []domain.AuditRow{
		salesRow("A", 2, 2000),
		feeRow("Amazon Sales Tax Collected", "", 160),
		feeRow("Amazon Marketplace Facilitator Tax", "", -160),
	}

	allocation, err := NewAllocator(brands).Allocate(rows)
	require.NoError(t, err)
	assert.Empty(t, allocation.ByBrand)
}
