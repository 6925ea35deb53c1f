package models

import "github.com/shopspring/decimal"

// Settlement represents a direct payment between two users that offsets an
// outstanding balance.
//
// A settlement is an independent ledger fact: it never rewrites the Paid
// flags of the expenses it references.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// Amount is the positive payment amount.
	Amount decimal.Decimal

	// Note is an optional description for the settlement.
	Note string

	// Date is the Unix millisecond timestamp the payment happened.
	Date int64

	// PaidByUserID is the user who paid (debtor settling up).
	PaidByUserID string

	// ReceivedByUserID is the user who received payment. Always distinct
	// from PaidByUserID.
	ReceivedByUserID string

	// RelatedExpenseIDs optionally reference the expenses this settlement
	// offsets. Audit references only.
	RelatedExpenseIDs []string

	// GroupID scopes the settlement to a group. Empty for one-on-one.
	GroupID string

	// CreatedBy is the user who recorded the settlement.
	CreatedBy string

	// CreatedAt is the Unix millisecond timestamp the record was inserted.
	CreatedAt int64
}
