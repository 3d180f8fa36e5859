package domain

// PnlBucket represents a profitability rollup category
type PnlBucket string

const (
	BucketSellerFees     PnlBucket = "SELLER_FEES"
	BucketFBAFees        PnlBucket = "FBA_FEES"
	BucketStorageFees    PnlBucket = "STORAGE_FEES"
	BucketAdvertising    PnlBucket = "ADVERTISING"
	BucketPromotions     PnlBucket = "PROMOTIONS"
	BucketReimbursement  PnlBucket = "INVENTORY_REIMBURSEMENT"
	BucketAWDWarehousing PnlBucket = "AWD_WAREHOUSING"
)

// PnlAllocation attributes one settlement's classified lines to brands and
// SKUs. Per bucket, the brand amounts sum to the bucket's total classified
// cents; per (bucket, brand), the SKU amounts sum to that brand's allocation.
type PnlAllocation struct {
	InvoiceID string
	ByBrand   map[PnlBucket]map[string]Cents
	BySKU     map[PnlBucket]map[string]map[string]Cents
}

// Add accumulates cents into a bucket/brand/SKU cell, updating the brand
// rollup and the SKU breakdown together so their sums stay consistent.
func (p *PnlAllocation) Add(bucket PnlBucket, brand, sku string, cents Cents) {
	if p.ByBrand[bucket] == nil {
		p.ByBrand[bucket] = make(map[string]Cents)
	}
	p.ByBrand[bucket][brand] += cents

	if p.BySKU[bucket] == nil {
		p.BySKU[bucket] = make(map[string]map[string]Cents)
	}
	if p.BySKU[bucket][brand] == nil {
		p.BySKU[bucket][brand] = make(map[string]Cents)
	}
	p.BySKU[bucket][brand][sku] += cents
}
