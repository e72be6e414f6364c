package order

import (
	"errors"
	"fmt"

	"picking/internal/pkg/errs"
)

var (
	// ErrOrderAlreadyFinished is returned when an update is attempted against
	// an order that has reached its terminal state. Finished orders accept no
	// further mutation of any kind.
	ErrOrderAlreadyFinished = errors.New("picking order is already finished")

	// ErrOrderIncomplete is returned when a finish is requested while at
	// least one item still has no picked quantity.
	ErrOrderIncomplete = errors.New("picking order has items without a picked quantity")
)

// Status represents the lifecycle state of a picking order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct workflow.
//
// State transitions:
//
//	NotStarted ──> Started ──> Finished
//
// Transitions are forward-only; Finished is terminal. Any update request
// against a NotStarted order first normalizes it to Started, so a finish is
// always evaluated from Started.
//
// Status is a value object that validates state transitions and provides the
// wire/persistence string representation.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// NotStarted is the initial status assigned at ingestion, before any
	// operator has touched the order.
	NotStarted

	// Started indicates at least one update request has reached the order.
	Started

	// Finished indicates every item has a picked quantity and an operator
	// declared the order done. This is a final state with no further
	// transitions allowed.
	Finished
)

// getStatusStrings returns a map of Status values to their string
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		NotStarted: "not_started",
		Started:    "started",
		Finished:   "finished",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		NotStarted: "not_started",
		Started:    "started",
		Finished:   "finished",
	}
}

// StatusFromString parses the wire/persistence representation of a status.
// Returns an error for anything that is not one of the three valid states.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: NotStarted, Started, Finished.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Start transitions the status to Started.
//
// Valid transitions:
//   - NotStarted -> Started (first update touches the order)
//   - Started -> Started (no-op, updates keep arriving)
//
// Returns ErrOrderAlreadyFinished when called on a Finished order, or a
// validation error for an invalid status value.
func (s Status) Start() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == Finished {
		return 0, ErrOrderAlreadyFinished
	}

	return Started, nil
}

// Finish transitions the status to Finished.
//
// Valid transitions:
//   - Started -> Finished
//   - NotStarted -> Finished (reachable in principle, though every update
//     request normalizes NotStarted to Started before a finish is evaluated)
//
// Returns ErrOrderAlreadyFinished when the order is already terminal.
// Completeness of the items is the aggregate's concern, not the status's.
func (s Status) Finish() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == Finished {
		return 0, ErrOrderAlreadyFinished
	}

	return Finished, nil
}
