// Package order provides the Order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root holding customer, items, total and status
//   - Customer and Item: immutable values copied into the order when it is placed
//   - Status: the lifecycle enumeration and the transition table
//   - StatusChangedEvent: the domain event recorded on every accepted transition
//
// Key business rules:
//   - the total is the exact sum of unit price × quantity, computed once at creation
//   - item names and prices are snapshots and are never refreshed from the catalog
//   - CREATED -> PREPARING | CANCELLED, PREPARING -> DELIVERED | CANCELLED
//   - DELIVERED and CANCELLED are terminal; requesting the current status again is accepted and recorded as a transition
package order
