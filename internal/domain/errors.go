package domain

import "fmt"

// InsufficientFundsError is returned by a handler when a command would
// drive CashBalance below zero without drawing on available credit.
type InsufficientFundsError struct {
	Needed    float64
	Available float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %.2f, have %.2f", e.Needed, e.Available)
}

// InvalidStateError is returned when a command's preconditions aren't met
// by the current state (e.g. closing a location that doesn't exist, or
// appealing a fine that's already paid).
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return "invalid state: " + e.Reason
}

// CreditError is returned when a loan request fails a credit-rating floor
// or exceeds an agent's available line of credit.
type CreditError struct {
	Reason string
}

func (e *CreditError) Error() string {
	return "credit error: " + e.Reason
}

// LocationNotFoundError is returned when a command references a LocationID
// the agent does not operate.
type LocationNotFoundError struct {
	LocationID string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location not found: %s", e.LocationID)
}

// MachineNotFoundError is returned when a command references a MachineID
// that does not exist at the given location.
type MachineNotFoundError struct {
	LocationID, MachineID string
}

func (e *MachineNotFoundError) Error() string {
	return fmt.Sprintf("machine not found: %s at location %s", e.MachineID, e.LocationID)
}

// VendorNotFoundError is returned when a command references a VendorID
// with no relationship recorded at the given location.
type VendorNotFoundError struct {
	LocationID, VendorID string
}

func (e *VendorNotFoundError) Error() string {
	return fmt.Sprintf("vendor not found: %s at location %s", e.VendorID, e.LocationID)
}

// StaffNotFoundError is returned when a command references a StaffID that
// does not exist at the given location.
type StaffNotFoundError struct {
	LocationID, StaffID string
}

func (e *StaffNotFoundError) Error() string {
	return fmt.Sprintf("staff not found: %s at location %s", e.StaffID, e.LocationID)
}

// ContractViolationError is returned when a command would breach an
// existing exclusive contract or alliance term.
type ContractViolationError struct {
	Reason string
}

func (e *ContractViolationError) Error() string {
	return "contract violation: " + e.Reason
}

// StorageError wraps a failure from the event log itself. It is always
// fatal to the command that triggered it: the caller cannot retry around
// it by changing their command.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage error: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// InvariantViolation marks a condition the engine's own logic should have
// made impossible (e.g. a reducer leaving CashBalance NaN). Seeing one
// means a bug in the engine, not a bad command.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.Reason }
