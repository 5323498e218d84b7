package domain

import "time"

type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeCreditCard   PaymentMode = "Credit Card"
	PaymentModeBankTransfer PaymentMode = "Bank Transfer"
	PaymentModeOther        PaymentMode = "Other"
)

// Rental is one check-out/check-in cycle of an asset. Rate and billing cycle
// are snapshots taken at creation time; repricing the asset later does not
// change historical rentals. InDate == nil means the rental is still open.
type Rental struct {
	ID            string       `json:"id"`
	CustomerID    string       `json:"customerId"`
	OutDate       time.Time    `json:"outDate"`
	InDate        *time.Time   `json:"inDate"`
	Rate          float64      `json:"rate"`
	BillingCycle  BillingCycle `json:"billingCycle"`
	Payments      []Payment    `json:"payments"`
	AgreementCopy string       `json:"agreementCopy,omitempty"`
}

// Payment is an append-only ledger entry against a rental's balance.
// Immutable once created.
type Payment struct {
	ID     string      `json:"id"`
	Amount float64     `json:"amount"`
	Date   time.Time   `json:"date"`
	Mode   PaymentMode `json:"mode"`
}
