// Package models defines the core domain models for tripkit.
//
// # Models
//
//   - Trip: aggregate root that owns a traveler roster and an expense list
//   - Traveler: a participant in a trip, identified by a stable ID
//   - Expense: a single outlay paid by one traveler and shared by participants
//   - Split: one participant's portion of an expense
//   - Category: closed set of expense categories with an "other" fallback
//
// Balances are not modeled here. They are derived from the expense list on
// demand by the ledger package and never stored.
//
// # Design Principles
//
//  1. **Flat records**: relationships use ID strings, never pointers
//  2. **Whole-list replacement**: a trip's expenses are replaced wholesale on
//     every change, so a reader never sees a partially updated list
//  3. **Closed enums**: categories are a fixed set, unknown text maps to Other
package models
