// Package classifier maps marketplace financial-event lines to ledger memos.
//
// The table is intentionally exhaustive: a (event, component, sub-type)
// combination the table does not know is an error, never a default bucket,
// so new marketplace subtypes require review before money moves.
package classifier

import (
	"fmt"

	"github.com/progami/settleflow/internal/domain"
)

// Ledger memo names. The balancer and journal builder reuse MemoDeferred.
const (
	MemoSales            = "Amazon Sales"
	MemoShippingIncome   = "Amazon Shipping Income"
	MemoGiftWrapIncome   = "Amazon Gift Wrap Income"
	MemoSalesTax         = "Amazon Sales Tax Collected"
	MemoRefunds          = "Amazon Refunds"
	MemoSalesTaxRefunded = "Amazon Sales Tax Refunded"

	MemoCommission         = "Amazon Seller Fees - Commission"
	MemoRefundCommission   = "Amazon Seller Fees - Refund Commission"
	MemoClosingFees        = "Amazon Seller Fees - Closing Fees"
	MemoShippingChargeback = "Amazon Seller Fees - Shipping Chargeback"
	MemoSubscriptionFees   = "Amazon Subscription Fees"

	MemoFBAFulfillment = "Amazon FBA Fees - Fulfillment"
	MemoFBARemoval     = "Amazon FBA Fees - Removal"
	MemoFBADisposal    = "Amazon FBA Fees - Disposal"
	MemoFBAInbound     = "Amazon FBA Fees - Inbound Transportation"
	MemoFBAStorage     = "Amazon FBA Storage Fees"
	MemoFBALongTerm    = "Amazon FBA Long-Term Storage Fees"
	MemoAWDStorage     = "Amazon AWD Storage Fees"
	MemoAWDProcessing  = "Amazon AWD Processing Fees"

	MemoAdvertising      = "Amazon Advertising Costs"
	MemoPromotions       = "Amazon Promotions"
	MemoFacilitatorTax   = "Amazon Marketplace Facilitator Tax"
	MemoReimbursement    = "Amazon Inventory Reimbursement"
	MemoOtherAdjustments = "Amazon Other Adjustments"
	MemoAdhocDisbursed   = "Amazon Adhoc Disbursements"
	MemoDebtRecovery     = "Amazon Debt Recovery"
	MemoDeferred         = "Amazon Deferred Settlement Balance"
)

type key struct {
	event     domain.EventKind
	component domain.ComponentKind
	subType   string
}

// skip marks lines the table recognizes but that carry no ledger meaning,
// such as the zero-amount gift-wrap chargebacks the marketplace emits.
const skip = ""

var memoTable = map[key]string{
	// Shipments
	{domain.EventShipment, domain.ComponentCharge, "Principal"}:      MemoSales,
	{domain.EventShipment, domain.ComponentCharge, "Tax"}:            MemoSalesTax,
	{domain.EventShipment, domain.ComponentCharge, "ShippingCharge"}: MemoShippingIncome,
	{domain.EventShipment, domain.ComponentCharge, "ShippingTax"}:    MemoSalesTax,
	{domain.EventShipment, domain.ComponentCharge, "GiftWrap"}:       MemoGiftWrapIncome,
	{domain.EventShipment, domain.ComponentCharge, "GiftWrapTax"}:    MemoSalesTax,

	{domain.EventShipment, domain.ComponentFee, "Commission"}:                  MemoCommission,
	{domain.EventShipment, domain.ComponentFee, "FixedClosingFee"}:             MemoClosingFees,
	{domain.EventShipment, domain.ComponentFee, "VariableClosingFee"}:          MemoClosingFees,
	{domain.EventShipment, domain.ComponentFee, "ShippingChargeback"}:          MemoShippingChargeback,
	{domain.EventShipment, domain.ComponentFee, "GiftwrapChargeback"}:          skip,
	{domain.EventShipment, domain.ComponentFee, "FBAPerUnitFulfillmentFee"}:    MemoFBAFulfillment,
	{domain.EventShipment, domain.ComponentFee, "FBAPerOrderFulfillmentFee"}:   MemoFBAFulfillment,
	{domain.EventShipment, domain.ComponentFee, "FBAWeightBasedFee"}:           MemoFBAFulfillment,
	{domain.EventShipment, domain.ComponentPromotion, "Principal"}:             MemoPromotions,
	{domain.EventShipment, domain.ComponentPromotion, "Shipping"}:              MemoPromotions,
	{domain.EventShipment, domain.ComponentTaxWithheld, "MarketplaceFacilitator"}: MemoFacilitatorTax,

	// Refunds mirror shipments with refund memos for the revenue side.
	{domain.EventRefund, domain.ComponentCharge, "Principal"}:      MemoRefunds,
	{domain.EventRefund, domain.ComponentCharge, "Tax"}:            MemoSalesTaxRefunded,
	{domain.EventRefund, domain.ComponentCharge, "ShippingCharge"}: MemoRefunds,
	{domain.EventRefund, domain.ComponentCharge, "ShippingTax"}:    MemoSalesTaxRefunded,
	{domain.EventRefund, domain.ComponentCharge, "GiftWrap"}:       MemoRefunds,
	{domain.EventRefund, domain.ComponentCharge, "GiftWrapTax"}:    MemoSalesTaxRefunded,

	{domain.EventRefund, domain.ComponentFee, "Commission"}:         MemoCommission,
	{domain.EventRefund, domain.ComponentFee, "RefundCommission"}:   MemoRefundCommission,
	{domain.EventRefund, domain.ComponentFee, "ShippingChargeback"}: MemoShippingChargeback,
	{domain.EventRefund, domain.ComponentFee, "GiftwrapChargeback"}: skip,
	{domain.EventRefund, domain.ComponentPromotion, "Principal"}:    MemoPromotions,
	{domain.EventRefund, domain.ComponentPromotion, "Shipping"}:     MemoPromotions,
	{domain.EventRefund, domain.ComponentTaxWithheld, "MarketplaceFacilitator"}: MemoFacilitatorTax,

	// Advertising invoices
	{domain.EventAdPayment, domain.ComponentCharge, "TransactionTotalAmount"}: MemoAdvertising,

	// Service fees (typically undated rows)
	{domain.EventServiceFee, domain.ComponentFee, "Subscription"}:                MemoSubscriptionFees,
	{domain.EventServiceFee, domain.ComponentFee, "FBAStorageFee"}:               MemoFBAStorage,
	{domain.EventServiceFee, domain.ComponentFee, "FBALongTermStorageFee"}:       MemoFBALongTerm,
	{domain.EventServiceFee, domain.ComponentFee, "FBARemovalFee"}:               MemoFBARemoval,
	{domain.EventServiceFee, domain.ComponentFee, "FBADisposalFee"}:              MemoFBADisposal,
	{domain.EventServiceFee, domain.ComponentFee, "FBAInboundTransportationFee"}: MemoFBAInbound,
	{domain.EventServiceFee, domain.ComponentFee, "AWDStorageFee"}:               MemoAWDStorage,
	{domain.EventServiceFee, domain.ComponentFee, "AWDProcessingFee"}:            MemoAWDProcessing,

	// Adjustments
	{domain.EventAdjustment, domain.ComponentCharge, "FBAInventoryReimbursement"}: MemoReimbursement,
	{domain.EventAdjustment, domain.ComponentCharge, "WarehouseDamage"}:           MemoReimbursement,
	{domain.EventAdjustment, domain.ComponentCharge, "WarehouseLost"}:             MemoReimbursement,
	{domain.EventAdjustment, domain.ComponentCharge, "PostageBilling"}:            MemoOtherAdjustments,
	{domain.EventAdjustment, domain.ComponentCharge, "Other"}:                     MemoOtherAdjustments,

	// Disbursements and debt
	{domain.EventAdhocDisbursement, domain.ComponentPayment, "Disbursement"}: MemoAdhocDisbursed,
	{domain.EventDebtRecovery, domain.ComponentPayment, "DebtPayment"}:       MemoDebtRecovery,
	{domain.EventDebtRecovery, domain.ComponentCharge, "DebtAdjustment"}:     MemoDebtRecovery,
}

// Memo resolves a feed line to its ledger memo. The second result is false
// for recognized-but-insignificant lines that callers should drop.
func Memo(event domain.EventKind, component domain.ComponentKind, subType string) (string, bool, error) {
	memo, ok := memoTable[key{event, component, subType}]
	if !ok {
		return "", false, fmt.Errorf("%w: %s/%s/%s",
			domain.ErrUnhandledEventType, event, component, subType)
	}
	return memo, memo != skip, nil
}
