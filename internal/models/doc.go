// Package models defines the core domain records for Splitr.
//
// # Records
//
//   - User: a registered account; created once, never deleted
//   - Group: a named set of members sharing expenses
//   - Expense: an amount paid by one user, divided into Splits
//   - Settlement: a direct payment between two users
//
// # Design Principles
//
//  1. **Append-only ledger**: Expenses and Settlements are immutable facts.
//     Corrections are modeled as new entries, never in-place edits.
//  2. **Avoid circular references**: records reference each other by ID string,
//     never by pointer.
//  3. **Exact money**: all amounts are decimal.Decimal; float arithmetic never
//     touches a stored amount.
//
// Timestamps are Unix milliseconds. IDs are UUID strings assigned by the store
// on insert.
package models
