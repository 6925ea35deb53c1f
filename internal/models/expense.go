package models

import "github.com/shopspring/decimal"

// SplitType describes how an expense's amount was divided.
type SplitType string

const (
	// SplitEqual divides the amount evenly across participants, with any
	// cent-level remainder absorbed by the last participant.
	SplitEqual SplitType = "equal"

	// SplitPercentage uses caller-supplied fractions of the amount.
	SplitPercentage SplitType = "percentage"
)

// Split is one participant's portion of an expense.
type Split struct {
	// UserID references the participant's user record.
	UserID string

	// Amount is this participant's share of the expense total.
	Amount decimal.Decimal

	// Paid marks the payer's own share at record time. It is never updated
	// afterwards; balance aggregation over settlements decides what is
	// actually settled.
	Paid bool
}

// Expense represents an amount paid by one user on behalf of several.
//
// Invariant: the split amounts sum to Amount within a cent. When GroupID is
// set, every split participant is a member of that group; a one-on-one
// expense has at most two distinct participants including the payer.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable label (e.g., "Dinner").
	Description string

	// Amount is the positive total, currency-agnostic.
	Amount decimal.Decimal

	// Category is a free-form tag (e.g., "foodDrink").
	Category string

	// Date is the Unix millisecond timestamp the expense occurred.
	Date int64

	// PaidByUserID is the user who paid the full amount.
	PaidByUserID string

	// SplitType is how Splits were derived.
	SplitType SplitType

	// Splits divides Amount across participants. Order carries no meaning.
	Splits []Split

	// GroupID scopes the expense to a group. Empty for one-on-one expenses.
	GroupID string

	// CreatedBy is the user who recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix millisecond timestamp the record was inserted.
	CreatedAt int64
}

// ParticipantIDs returns the distinct user IDs involved in the expense,
// payer included.
func (e *Expense) ParticipantIDs() []string {
	seen := make(map[string]bool, len(e.Splits)+1)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	add(e.PaidByUserID)
	for _, s := range e.Splits {
		add(s.UserID)
	}
	return ids
}

// SplitFor returns the split belonging to userID, or nil.
func (e *Expense) SplitFor(userID string) *Split {
	for i := range e.Splits {
		if e.Splits[i].UserID == userID {
			return &e.Splits[i]
		}
	}
	return nil
}
