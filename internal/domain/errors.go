package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failures. Not-found conditions during return/payment are
// deliberately not errors; those operations are lenient no-ops.
var (
	ErrEmptyProductType     = errors.New("product type name cannot be empty")
	ErrDuplicateProductType = errors.New("product type already exists")
	ErrProductTypeInUse     = errors.New("product type is referenced by existing assets")
	ErrWrongPassword        = errors.New("incorrect current password")
	ErrAnswerRequired       = errors.New("security answer cannot be empty if a question is set")
	ErrRecoveryMismatch     = errors.New("security answer does not match")
	ErrNoRecoveryQuestion   = errors.New("no security question is configured")
	ErrOpenRentalExists     = errors.New("asset already has an open rental")
	ErrNonPositiveAmount    = errors.New("payment amount must be greater than zero")
	ErrNoAutoBackup         = errors.New("no auto-backup snapshot exists")
)

// ImportError reports which required fields a backup payload is missing.
// The store is left untouched when import fails with this error.
type ImportError struct {
	Missing []string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("invalid or corrupted backup file: missing %s", strings.Join(e.Missing, ", "))
}
