package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	apperr "github.com/parthgupta9/splitr/internal/errors"
	"github.com/parthgupta9/splitr/internal/ledger"
	"github.com/parthgupta9/splitr/internal/models"
	"github.com/parthgupta9/splitr/internal/storage"
)

// LedgerService validates and records expenses and settlements, and derives
// balances from the raw history.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// ExpenseInput carries the caller-supplied fields of a new expense.
type ExpenseInput struct {
	Description  string
	Amount       decimal.Decimal
	Category     string
	Date         int64
	PaidByUserID string
	SplitType    models.SplitType
	Splits       []models.Split
	GroupID      string

	// Participants generates even splits across these users when SplitType
	// is equal and Splits is empty. Ignored otherwise.
	Participants []string
}

// RecordExpense validates and persists a new expense.
//
// All validation happens before the insert: amounts and splits are checked
// first, then every referenced user and group. A group expense requires each
// split participant and the payer to be current members. The payer's own
// split is stored Paid, everyone else's starts unpaid.
func (s *LedgerService) RecordExpense(ctx context.Context, callerID string, in ExpenseInput) (*models.Expense, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "no caller identity")
	}
	if in.Description == "" {
		return nil, apperr.Invalid("expense description must not be empty")
	}
	if in.PaidByUserID == "" {
		return nil, apperr.Invalid("expense requires a payer")
	}

	if in.SplitType == models.SplitEqual && len(in.Splits) == 0 && len(in.Participants) > 0 {
		splits, err := ledger.EqualSplits(in.Amount, in.Participants)
		if err != nil {
			return nil, err
		}
		in.Splits = splits
	}
	if err := ledger.ValidateSplits(in.SplitType, in.Amount, in.Splits); err != nil {
		return nil, err
	}

	splitUserIDs := make([]string, len(in.Splits))
	payerHasSplit := false
	for i, split := range in.Splits {
		splitUserIDs[i] = split.UserID
		if split.UserID == in.PaidByUserID {
			payerHasSplit = true
		}
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, apperr.NotFound("group", in.GroupID)
		}
		if !group.HasMember(in.PaidByUserID) {
			return nil, apperr.New(apperr.CodeNotAGroupMember,
				"payer %s is not a member of group %s", in.PaidByUserID, in.GroupID)
		}
		for _, id := range splitUserIDs {
			if !group.HasMember(id) {
				return nil, apperr.New(apperr.CodeNotAGroupMember,
					"split participant %s is not a member of group %s", id, in.GroupID)
			}
		}
	} else {
		// One-on-one: payer plus at most one counterparty.
		if len(splitUserIDs) > 2 {
			return nil, apperr.Invalid("a personal expense splits between at most two users, got %d", len(splitUserIDs))
		}
		if !payerHasSplit && len(splitUserIDs) > 1 {
			return nil, apperr.Invalid("payer must hold a split of a personal expense")
		}

		ids := append([]string{in.PaidByUserID}, splitUserIDs...)
		users, err := s.store.GetUsersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if users[id] == nil {
				return nil, apperr.NotFound("user", id)
			}
		}
	}

	if in.Date == 0 {
		in.Date = time.Now().UnixMilli()
	}

	expense := &models.Expense{
		Description:  in.Description,
		Amount:       in.Amount,
		Category:     in.Category,
		Date:         in.Date,
		PaidByUserID: in.PaidByUserID,
		SplitType:    in.SplitType,
		Splits:       make([]models.Split, len(in.Splits)),
		GroupID:      in.GroupID,
		CreatedBy:    callerID,
	}
	for i, split := range in.Splits {
		split.Paid = split.UserID == in.PaidByUserID
		expense.Splits[i] = split
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("RecordExpense failed", "description", in.Description, "error", err)
		return nil, err
	}

	slog.Info("expense recorded",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"group_id", expense.GroupID,
		"splits", len(expense.Splits),
	)
	return expense, nil
}

// SettlementInput carries the caller-supplied fields of a new settlement.
type SettlementInput struct {
	Amount            decimal.Decimal
	Note              string
	Date              int64
	PaidByUserID      string
	ReceivedByUserID  string
	RelatedExpenseIDs []string
	GroupID           string
}

// RecordSettlement validates and persists a new settlement.
//
// The settlement is an independent ledger fact: the referenced expenses keep
// their split Paid flags untouched.
func (s *LedgerService) RecordSettlement(ctx context.Context, callerID string, in SettlementInput) (*models.Settlement, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "no caller identity")
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Invalid("settlement amount must be positive, got %s", in.Amount)
	}
	if in.PaidByUserID == "" || in.ReceivedByUserID == "" {
		return nil, apperr.Invalid("settlement requires a payer and a receiver")
	}
	if in.PaidByUserID == in.ReceivedByUserID {
		return nil, apperr.Invalid("settlement payer and receiver must differ")
	}

	users, err := s.store.GetUsersByIDs(ctx, []string{in.PaidByUserID, in.ReceivedByUserID})
	if err != nil {
		return nil, err
	}
	for _, id := range []string{in.PaidByUserID, in.ReceivedByUserID} {
		if users[id] == nil {
			return nil, apperr.NotFound("user", id)
		}
	}

	for _, expenseID := range in.RelatedExpenseIDs {
		if _, err := s.store.GetExpense(ctx, expenseID); err != nil {
			return nil, apperr.NotFound("expense", expenseID)
		}
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, apperr.NotFound("group", in.GroupID)
		}
		for _, id := range []string{in.PaidByUserID, in.ReceivedByUserID} {
			if !group.HasMember(id) {
				return nil, apperr.New(apperr.CodeNotAGroupMember,
					"user %s is not a member of group %s", id, in.GroupID)
			}
		}
	}

	if in.Date == 0 {
		in.Date = time.Now().UnixMilli()
	}

	settlement := &models.Settlement{
		Amount:            in.Amount,
		Note:              in.Note,
		Date:              in.Date,
		PaidByUserID:      in.PaidByUserID,
		ReceivedByUserID:  in.ReceivedByUserID,
		RelatedExpenseIDs: in.RelatedExpenseIDs,
		GroupID:           in.GroupID,
		CreatedBy:         callerID,
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "error", err)
		return nil, err
	}

	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"amount", settlement.Amount,
		"from", settlement.PaidByUserID,
		"to", settlement.ReceivedByUserID,
	)
	return settlement, nil
}

// PairLedger is the shared history between the caller and one counterparty.
type PairLedger struct {
	Other       *models.User
	Expenses    []*models.Expense
	Settlements []*models.Settlement

	// NetBalance is positive when the caller owes the counterparty.
	NetBalance decimal.Decimal
}

// GetPairLedger retrieves every expense and settlement shared between the
// caller and otherID, with their net balance.
func (s *LedgerService) GetPairLedger(ctx context.Context, callerID, otherID string) (*PairLedger, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "no caller identity")
	}
	other, err := s.store.GetUserByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, apperr.NotFound("user", otherID)
	}

	expenses, err := s.store.ListExpensesBetweenUsers(ctx, callerID, otherID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsBetweenUsers(ctx, callerID, otherID)
	if err != nil {
		return nil, err
	}

	return &PairLedger{
		Other:       other,
		Expenses:    expenses,
		Settlements: settlements,
		NetBalance:  ledger.NetBalance(callerID, otherID, expenses, settlements),
	}, nil
}

// GroupLedger is a group's full history with derived balances.
type GroupLedger struct {
	Group       *models.Group
	Expenses    []*models.Expense
	Settlements []*models.Settlement
	Balances    []ledger.MemberBalance
	Debts       []ledger.DebtEdge
}

// GetGroupLedger retrieves a group's expenses and settlements plus derived
// member balances. The caller must be a member.
func (s *LedgerService) GetGroupLedger(ctx context.Context, callerID, groupID string) (*GroupLedger, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "no caller identity")
	}
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.NotFound("group", groupID)
	}
	if !group.HasMember(callerID) {
		return nil, apperr.New(apperr.CodePermissionDenied, "caller is not a member of group %s", groupID)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, debts := ledger.GroupBalances(expenses, settlements)

	return &GroupLedger{
		Group:       group,
		Expenses:    expenses,
		Settlements: settlements,
		Balances:    balances,
		Debts:       debts,
	}, nil
}
