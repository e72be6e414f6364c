// Package services provides domain services that orchestrate business
// operations across the order aggregate in the picking system. It implements
// business workflows that don't naturally belong to a single entity.
//
// The package includes:
//   - PickReconciler: merges incoming client batches into an order's items
//     under the last-write-wins-by-timestamp rule
//
// Domain services stay free of persistence and transport concerns; handlers
// in the application layer wire them into units of work.
package services
