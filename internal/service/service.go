package service

import (
	"context"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/store"
)

type AssetService interface {
	List(ctx context.Context) ([]domain.Asset, error)
	Add(ctx context.Context, asset domain.Asset) (*domain.Asset, error)
	Update(ctx context.Context, asset domain.Asset) (*domain.Asset, error)
	Delete(ctx context.Context, assetID string) error
}

type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Add(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, customerID string) error
	// HasRentalHistory reports whether any rental references the customer.
	// The store does not enforce this; callers use it to guard deletes.
	HasRentalHistory(ctx context.Context, customerID string) (bool, error)
}

type ProductTypeService interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) ([]string, error)
	Delete(ctx context.Context, name string) ([]string, error)
}

// RentAssetParams carries everything a check-out needs. Rate and billing
// cycle are snapshotted onto the rental.
type RentAssetParams struct {
	AssetID       string
	CustomerID    string
	Rate          float64
	BillingCycle  domain.BillingCycle
	OutDate       time.Time
	AgreementCopy string
}

// AddPaymentParams identifies a rental inside an asset's history and the
// payment to append to its ledger.
type AddPaymentParams struct {
	AssetID  string
	RentalID string
	Amount   float64
	Date     time.Time
	Mode     domain.PaymentMode
}

type RentalService interface {
	// RentAsset opens a rental on the asset. Missing asset is a silent
	// no-op; a second open rental on the same asset is rejected.
	RentAsset(ctx context.Context, params RentAssetParams) error
	// ReturnAsset closes the asset's open rental, stamping the check-in
	// time. No-op when the asset or an open rental does not exist.
	ReturnAsset(ctx context.Context, assetID string) error
	// AddPayment appends to the rental's payment ledger. No-op when the
	// asset or rental is not found; the rental may be open or closed.
	AddPayment(ctx context.Context, params AddPaymentParams) error
}

// UpdateSecurityParams mirrors the settings form: an empty NewPassword means
// "leave the password alone"; nil Question/Answer mean "leave the recovery
// pair alone".
type UpdateSecurityParams struct {
	CurrentPassword string
	NewPassword     string
	Question        *string
	Answer          *string
}

type SecurityService interface {
	GetSettings(ctx context.Context) (*domain.SecuritySettings, error)
	VerifyPassword(ctx context.Context, candidate string) (bool, error)
	UpdateSettings(ctx context.Context, params UpdateSecurityParams) error
	// RecoverPassword compares the submitted answer (trimmed,
	// case-insensitive) against the stored one and, on match, returns the
	// plaintext password. Deliberately weak: single-admin local tool.
	RecoverPassword(ctx context.Context, answer string) (string, error)
}

type BackupService interface {
	ExportAll(ctx context.Context) (*domain.ExportPayload, error)
	// ImportAll validates the payload shape before any write; an invalid
	// payload leaves every stored collection untouched.
	ImportAll(ctx context.Context, raw []byte) error
	GetAutoBackup(ctx context.Context) (*domain.AutoBackupRecord, error)
	// RunAutoBackupIfDue refreshes the single backup slot when the last
	// run is older than the configured window. Reports whether it ran.
	RunAutoBackupIfDue(ctx context.Context, now time.Time) (bool, error)
	// RestoreAutoBackup replaces all live collections with the stored
	// snapshot. ErrNoAutoBackup when the slot is empty.
	RestoreAutoBackup(ctx context.Context) error
}

// Services bundles every domain service over one document store.
type Services struct {
	Assets       AssetService
	Customers    CustomerService
	ProductTypes ProductTypeService
	Rentals      RentalService
	Security     SecurityService
	Backup       BackupService
}

// New wires all services over the given document store. backupWindow is the
// minimum age of the auto-backup slot before it is refreshed.
func New(docs store.DocumentStore, backupWindow time.Duration) *Services {
	return &Services{
		Assets:       NewAssetService(docs),
		Customers:    NewCustomerService(docs),
		ProductTypes: NewProductTypeService(docs),
		Rentals:      NewRentalService(docs),
		Security:     NewSecurityService(docs),
		Backup:       NewBackupService(docs, backupWindow),
	}
}
