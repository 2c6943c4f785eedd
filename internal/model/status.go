package model

// CalculationMode selects how the base amount of a deal is priced.
type CalculationMode string

const (
	// CalcPerKg prices rate × (quantity × kg_per_unit).
	CalcPerKg CalculationMode = "per_kg"
	// CalcDirect prices rate × quantity.
	CalcDirect CalculationMode = "direct"
)

func (m CalculationMode) Valid() bool { return m == CalcPerKg || m == CalcDirect }

// BrokerageMode selects how the broker's commission is computed.
type BrokerageMode string

const (
	BrokeragePercentage BrokerageMode = "percentage"
	BrokeragePerBag     BrokerageMode = "per_bag"
)

func (m BrokerageMode) Valid() bool { return m == BrokeragePercentage || m == BrokeragePerBag }

// Unit is a display label for a deal's quantity. No conversion is tied to it.
type Unit string

const (
	UnitBags Unit = "bags"
	UnitKg   Unit = "kg"
	UnitTons Unit = "tons"
)

func (u Unit) Valid() bool { return u == UnitBags || u == UnitKg || u == UnitTons }

// DealStatus: "Pending" | "Delivered" | "Paid"
type DealStatus string

const (
	DealPending   DealStatus = "Pending"
	DealDelivered DealStatus = "Delivered"
	DealPaid      DealStatus = "Paid"
)

func (s DealStatus) Valid() bool {
	return s == DealPending || s == DealDelivered || s == DealPaid
}

// PaymentStatus is stored on each delivery: "Pending" | "Paid".
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

func (s PaymentStatus) Valid() bool { return s == PaymentPending || s == PaymentPaid }

// RollupStatus is the deal-level payment status derived from its deliveries.
// It is never stored.
type RollupStatus string

const (
	RollupPending RollupStatus = "Pending"
	RollupPartial RollupStatus = "Partial"
	RollupPaid    RollupStatus = "Paid"
)
