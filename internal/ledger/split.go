// Package ledger holds the pure split and balance arithmetic.
//
// Everything here operates on plain values and never touches storage; the
// service layer validates references and persists results.
package ledger

import (
	"github.com/shopspring/decimal"

	apperr "github.com/parthgupta9/splitr/internal/errors"
	"github.com/parthgupta9/splitr/internal/models"
)

// Tolerance is how far split amounts may drift from the expense total before
// the expense is rejected. One minor currency unit.
var Tolerance = decimal.New(1, -2) // 0.01

// EqualSplits divides amount evenly across the participants.
//
// Each share is amount/n truncated to the minor denomination; the cent-level
// residual goes to the last participant so the shares sum to amount exactly.
func EqualSplits(amount decimal.Decimal, participantIDs []string) ([]models.Split, error) {
	if len(participantIDs) == 0 {
		return nil, apperr.Invalid("equal split requires at least one participant")
	}
	if !amount.IsPositive() {
		return nil, apperr.Invalid("amount must be positive, got %s", amount)
	}

	n := decimal.NewFromInt(int64(len(participantIDs)))
	share := amount.Div(n).Truncate(2)

	splits := make([]models.Split, len(participantIDs))
	total := decimal.Zero
	for i, id := range participantIDs {
		splits[i] = models.Split{UserID: id, Amount: share}
		total = total.Add(share)
	}

	// Residual to the last participant.
	last := len(splits) - 1
	splits[last].Amount = splits[last].Amount.Add(amount.Sub(total))

	return splits, nil
}

// ValidateSplits checks the split-sum invariant for an expense about to be
// recorded.
//
// Splits must be non-empty, reference each participant once, carry positive
// amounts, and sum to amount within Tolerance. Equal-type splits must
// additionally all match within a cent.
func ValidateSplits(splitType models.SplitType, amount decimal.Decimal, splits []models.Split) error {
	if !amount.IsPositive() {
		return apperr.Invalid("amount must be positive, got %s", amount)
	}
	if len(splits) == 0 {
		return apperr.Invalid("expense requires at least one split")
	}
	if splitType != models.SplitEqual && splitType != models.SplitPercentage {
		return apperr.Invalid("unknown split type %q", splitType)
	}

	seen := make(map[string]bool, len(splits))
	sum := decimal.Zero
	for _, s := range splits {
		if s.UserID == "" {
			return apperr.Invalid("split is missing a user id")
		}
		if seen[s.UserID] {
			return apperr.Invalid("duplicate split participant %s", s.UserID)
		}
		seen[s.UserID] = true

		if !s.Amount.IsPositive() {
			return apperr.Invalid("split amount for %s must be positive, got %s", s.UserID, s.Amount)
		}
		sum = sum.Add(s.Amount)
	}

	if diff := sum.Sub(amount).Abs(); diff.GreaterThan(Tolerance) {
		return apperr.New(apperr.CodeSplitMismatch,
			"splits sum to %s, expense total is %s", sum, amount)
	}

	if splitType == models.SplitEqual {
		low, high := splits[0].Amount, splits[0].Amount
		for _, s := range splits[1:] {
			if s.Amount.LessThan(low) {
				low = s.Amount
			}
			if s.Amount.GreaterThan(high) {
				high = s.Amount
			}
		}
		// Even division truncates each share to cents and hands the whole
		// residual to one participant, so shares can legally differ by up to
		// a cent per remaining participant.
		maxSpread := Tolerance.Mul(decimal.NewFromInt(int64(len(splits) - 1)))
		if high.Sub(low).GreaterThan(maxSpread) {
			return apperr.New(apperr.CodeSplitMismatch,
				"equal split shares differ by more than the rounding residual (%s vs %s)", low, high)
		}
	}

	return nil
}
