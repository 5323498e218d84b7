package domain

import "time"

type AssetStatus string

const (
	AssetStatusAvailable AssetStatus = "Available"
	AssetStatusRented    AssetStatus = "Rented"
)

type BillingCycle string

const (
	BillingCycleDay   BillingCycle = "day"
	BillingCycleMonth BillingCycle = "month"
)

// Asset is a rentable item in the catalog. JSON field names match the v1.0
// backup file format, so exported documents round-trip unchanged.
type Asset struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	ProductType   string       `json:"productType"`
	Make          string       `json:"make"`
	Model         string       `json:"model"`
	SerialNumber  string       `json:"serialNumber"`
	PurchaseDate  time.Time    `json:"purchaseDate"`
	Photos        []string     `json:"photos"`
	Status        AssetStatus  `json:"status"`
	Rate          float64      `json:"rate"`
	BillingCycle  BillingCycle `json:"billingCycle"`
	RentalHistory []Rental     `json:"rentalHistory"`
}

// OpenRental returns the asset's open rental (inDate unset), if any.
// The write path guarantees at most one exists.
func (a *Asset) OpenRental() *Rental {
	for i := range a.RentalHistory {
		if a.RentalHistory[i].InDate == nil {
			return &a.RentalHistory[i]
		}
	}
	return nil
}
