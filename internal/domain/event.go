package domain

import "time"

// EventKind identifies the marketplace financial-event family.
type EventKind string

const (
	EventShipment          EventKind = "SHIPMENT"
	EventRefund            EventKind = "REFUND"
	EventAdPayment         EventKind = "AD_PAYMENT"
	EventAdjustment        EventKind = "ADJUSTMENT"
	EventServiceFee        EventKind = "SERVICE_FEE"
	EventAdhocDisbursement EventKind = "ADHOC_DISBURSEMENT"
	EventDebtRecovery      EventKind = "DEBT_RECOVERY"
)

// ComponentKind identifies the charge family nested inside an event.
type ComponentKind string

const (
	ComponentCharge      ComponentKind = "CHARGE"
	ComponentFee         ComponentKind = "FEE"
	ComponentPromotion   ComponentKind = "PROMOTION"
	ComponentTaxWithheld ComponentKind = "TAX_WITHHELD"
	ComponentPayment     ComponentKind = "PAYMENT"
)

// Component is one charge/fee/promotion/tax line nested in a financial event.
// Type carries the marketplace's own sub-type tag (e.g. "Principal",
// "Commission", "FBAPerUnitFulfillmentFee").
type Component struct {
	Kind     ComponentKind
	Type     string
	SKU      string
	Quantity int64
	Amount   Cents
}

// FinancialEvent is one row of the marketplace financial-event feed.
// PostedAt is nil for rows the marketplace emits without a posting date,
// such as subscription fees.
type FinancialEvent struct {
	Kind       EventKind
	PostedAt   *time.Time
	OrderID    string
	Components []Component
}

// EventGroup is the settlement header the feed groups events under.
// StartUTC and EndUTC bound the settlement window in UTC; OriginalTotal is
// the amount the marketplace itself reports for the whole settlement.
type EventGroup struct {
	ID            string
	SettlementID  string
	StartUTC      time.Time
	EndUTC        time.Time
	OriginalTotal Cents
}
