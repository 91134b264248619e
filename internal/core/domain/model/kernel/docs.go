// Package kernel holds the value objects shared by the ordering domain.
//
//   - UUID: aggregate identifier; the zero value means "not yet assigned"
//   - Money: exact non-negative decimal amount used for prices and totals
//
// Both are immutable and safe for concurrent use.
package kernel
