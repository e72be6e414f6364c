// Package order provides domain entities and business logic for picking-order
// management. It implements the Order aggregate root with lifecycle
// management and the per-item reconciliation state.
//
// The package includes:
//   - Order: The aggregate root that owns items and manages the lifecycle
//   - Item: One line of an order; immutable reference data plus picked state
//   - Status: A state machine that enforces valid status transitions
//
// Key business rules:
//   - Orders and their items are created once, at ingestion, and items are
//     never added or removed afterward
//   - Order status follows a defined workflow: NotStarted -> Started -> Finished
//   - Any update touching a NotStarted order advances it to Started first
//   - An order finishes only when every item has a picked quantity; Finished
//     is terminal and rejects all further updates
//   - Picked state changes follow last-write-wins by timestamp, with ties
//     kept by the stored pick
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
