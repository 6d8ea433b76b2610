package invoicing

import (
	"errors"
	"fmt"

	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

// Sentinels. Typed errors below match one of these through errors.Is so the
// transport layer can map them without knowing the concrete types.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNumberConflict    = errors.New("invoice number conflict")
	ErrQuotaExceeded     = errors.New("monthly cap exceeded")
	ErrStorage           = errors.New("storage failure")

	// ErrNotFound is returned by repositories when no record matches the
	// owner and id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateNumber is returned by repositories when (owner, number) is
	// already taken.
	ErrDuplicateNumber = errors.New("invoice number already exists")

	// ErrDuplicate is returned by repositories on any other uniqueness violation.
	ErrDuplicate = errors.New("record already exists")
)

// ValidationError reports malformed input. It is never retried.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidTransitionError reports a status change the lifecycle does not allow.
type InvalidTransitionError struct {
	InvoiceID string
	From      models.Status
	To        models.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invoice %s: cannot change status from %s to %s", e.InvoiceID, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// NumberConflictError is returned when numbering collided again after the
// single retry. The whole create call may be retried by the caller.
type NumberConflictError struct {
	Number   string
	Attempts int
}

func (e *NumberConflictError) Error() string {
	return fmt.Sprintf("invoice number %s still taken after %d attempts", e.Number, e.Attempts)
}

func (e *NumberConflictError) Is(target error) bool { return target == ErrNumberConflict }

// QuotaExceededError carries the computed figures so callers can render a
// precise warning or block.
type QuotaExceededError struct {
	Cap     decimal.Decimal
	Current decimal.Decimal // paid+pending already in the window
	Amount  decimal.Decimal // the invoice being created
	WouldBe decimal.Decimal
	Over    decimal.Decimal
	Window  string
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly cap %s exceeded by %s (%s window total would be %s)",
		e.Cap.StringFixed(2), e.Over.StringFixed(2), e.Window, e.WouldBe.StringFixed(2))
}

func (e *QuotaExceededError) Is(target error) bool { return target == ErrQuotaExceeded }

// StorageError wraps a repository failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// wrapStorage passes through not-found and already-typed errors and wraps
// everything else as a StorageError.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
