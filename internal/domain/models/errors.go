package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidOperation is wrapped by every aggregate invariant violation.
var ErrInvalidOperation = errors.New("invalid operation")

var (
	ErrDuplicateHolding      = fmt.Errorf("%w: duplicate holding", ErrInvalidOperation)
	ErrDuplicateTransaction  = fmt.Errorf("%w: duplicate transaction", ErrInvalidOperation)
	ErrNegativeQuantity      = fmt.Errorf("%w: quantity would become negative", ErrInvalidOperation)
	ErrHoldingNotPresent     = fmt.Errorf("%w: holding not in portfolio", ErrInvalidOperation)
	ErrTransactionNotPresent = fmt.Errorf("%w: transaction not in holding", ErrInvalidOperation)
	ErrMissingArgument       = fmt.Errorf("%w: missing argument", ErrInvalidOperation)
)

// ErrNotFound is wrapped by collaborators when a referenced portfolio,
// holding, transaction or asset does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is wrapped when a write clashes with stored state.
var ErrConflict = errors.New("conflict")

var (
	// ErrConcurrentModification means the stored aggregate moved on since it
	// was loaded.
	ErrConcurrentModification = fmt.Errorf("%w: portfolio was modified concurrently", ErrConflict)
	ErrAssetExists            = fmt.Errorf("%w: asset already exists", ErrConflict)
	ErrAssetInUse             = fmt.Errorf("%w: asset is referenced by holdings", ErrConflict)
)

// ValidationErrors collects field level input problems, keyed by field name.
type ValidationErrors map[string][]string

func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// OrNil returns nil when nothing was collected, so callers can
// `return v.OrNil()` without a typed-nil error.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(v[f], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
