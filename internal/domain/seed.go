package domain

import "time"

// DefaultPassword is the admin password a fresh installation starts with.
const DefaultPassword = "admin123"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SeedAssets returns the catalog a fresh data file is seeded with.
func SeedAssets() []Asset {
	return []Asset{
		{
			ID:            "ASSET-001",
			Name:          "Concrete Mixer 500L",
			ProductType:   "Construction Equipment",
			Make:          "BuildRight",
			Model:         "CM-500",
			SerialNumber:  "BR-CM500-1001",
			PurchaseDate:  date(2022, time.January, 15),
			Photos:        []string{},
			Status:        AssetStatusAvailable,
			RentalHistory: []Rental{},
			Rate:          50,
			BillingCycle:  BillingCycleDay,
		},
		{
			ID:            "ASSET-002",
			Name:          "Scaffolding Set (10ft)",
			ProductType:   "Construction Equipment",
			Make:          "SafeScaffold",
			Model:         "SS-10",
			SerialNumber:  "SS-10-2023",
			PurchaseDate:  date(2022, time.March, 20),
			Photos:        []string{},
			Status:        AssetStatusAvailable,
			RentalHistory: []Rental{},
			Rate:          150,
			BillingCycle:  BillingCycleMonth,
		},
		{
			ID:            "ASSET-003",
			Name:          "Canon EOS R5",
			ProductType:   "Cameras",
			Make:          "Canon",
			Model:         "EOS R5",
			SerialNumber:  "CAN-R5-1234",
			PurchaseDate:  date(2023, time.May, 10),
			Photos:        []string{},
			Status:        AssetStatusAvailable,
			RentalHistory: []Rental{},
			Rate:          75,
			BillingCycle:  BillingCycleDay,
		},
	}
}

// SeedCustomers returns the customer roster a fresh data file is seeded with.
func SeedCustomers() []Customer {
	return []Customer{
		{
			ID:      "CUST-001",
			Name:    "John Doe Construction",
			Email:   "john.doe@construction.com",
			Phone:   "123-456-7890",
			Address: "123 Main St, Anytown, USA",
			Aadhar:  "1234 5678 9012",
		},
		{
			ID:      "CUST-002",
			Name:    "Jane Smith Builders",
			Email:   "jane.smith@builders.com",
			Phone:   "987-654-3210",
			Address: "456 Oak Ave, Othertown, USA",
			Aadhar:  "9876 5432 1098",
		},
	}
}

// SeedProductTypes derives the distinct product types used by the seed
// catalog, preserving first-seen order.
func SeedProductTypes() []string {
	seen := make(map[string]struct{})
	var types []string
	for _, a := range SeedAssets() {
		if _, ok := seen[a.ProductType]; ok {
			continue
		}
		seen[a.ProductType] = struct{}{}
		types = append(types, a.ProductType)
	}
	return types
}
