// Package guard enforces the constructor pattern for domain objects.
// A ConstructorGuard embedded in a struct distinguishes instances created
// through a factory function from zero values, so validation can reject
// objects that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a zero
// value and the caller did not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value is
// invalid; constructors embed a guard obtained from NewConstructorGuard.
//
// Example:
//
//	type Weight struct {
//	    grams int
//	    guard guard.ConstructorGuard
//	}
//
//	func NewWeight(grams int) (Weight, error) {
//	    return Weight{grams: grams, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (w Weight) Validate() error {
//	    return w.guard.Validate(errWeightNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking its holder as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the holder was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
