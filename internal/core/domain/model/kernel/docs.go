// Package kernel provides core domain primitives and utilities for the picking system.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Quantity: A non-negative decimal quantity fixed to three fractional digits
//   - Pick-time helpers: the wire format for picked_at timestamps
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
