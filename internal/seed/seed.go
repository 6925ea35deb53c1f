// Package seed populates a fresh database with a deterministic demo ledger.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parthgupta9/splitr/internal/models"
	"github.com/parthgupta9/splitr/internal/service"
	"github.com/parthgupta9/splitr/internal/storage"
)

// FixtureVersion identifies this fixture set. Bump it when the fixture data
// changes so a fresh environment reseeds.
const FixtureVersion = "demo-v1"

// Result reports what a seed run did.
type Result struct {
	Skipped bool
	Reason  string
	Stats   *Stats
}

// Stats counts the records a successful run created.
type Stats struct {
	Users            int
	Groups           int
	OneOnOneExpenses int
	GroupExpenses    int
	Settlements      int
}

// Seeder builds the fixture set through the same services real callers use,
// so every fixture passes the full validation path.
type Seeder struct {
	store  storage.Store
	groups *service.GroupService
	ledger *service.LedgerService
}

// New creates a Seeder.
func New(store storage.Store, groups *service.GroupService, ledger *service.LedgerService) *Seeder {
	return &Seeder{store: store, groups: groups, ledger: ledger}
}

// Run seeds the database once.
//
// The run is skipped when this fixture version has already run, when any
// expense exists (the ledger is not fresh), or when fewer than three users
// are registered. A skipped run writes nothing.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	seeded, err := s.store.Seeded(ctx, FixtureVersion)
	if err != nil {
		return nil, err
	}
	if seeded {
		return &Result{Skipped: true, Reason: "fixture set already seeded"}, nil
	}

	count, err := s.store.CountExpenses(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return &Result{Skipped: true, Reason: fmt.Sprintf("database already has %d expenses", count)}, nil
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) < 3 {
		return &Result{Skipped: true, Reason: "need at least 3 users"}, nil
	}
	u1, u2, u3 := users[0], users[1], users[2]

	groups, err := s.createGroups(ctx, u1, u2, u3)
	if err != nil {
		return nil, err
	}

	oneOnOne, err := s.createOneOnOneExpenses(ctx, u1, u2, u3)
	if err != nil {
		return nil, err
	}

	groupExpenses, err := s.createGroupExpenses(ctx, u1, u2, u3, groups)
	if err != nil {
		return nil, err
	}

	settlements, err := s.createSettlements(ctx, u1, u2, u3, groups, oneOnOne, groupExpenses)
	if err != nil {
		return nil, err
	}

	if err := s.store.MarkSeeded(ctx, FixtureVersion); err != nil {
		return nil, err
	}

	slog.Info("fixture set seeded",
		"version", FixtureVersion,
		"groups", len(groups),
		"expenses", len(oneOnOne)+len(groupExpenses),
		"settlements", len(settlements),
	)

	return &Result{
		Stats: &Stats{
			Users:            len(users),
			Groups:           len(groups),
			OneOnOneExpenses: len(oneOnOne),
			GroupExpenses:    len(groupExpenses),
			Settlements:      len(settlements),
		},
	}, nil
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func daysAgo(n int) int64 {
	return time.Now().AddDate(0, 0, -n).UnixMilli()
}

func (s *Seeder) createGroups(ctx context.Context, u1, u2, u3 *models.User) ([]*models.Group, error) {
	specs := []struct {
		caller      string
		name        string
		description string
		members     []string
	}{
		{u1.ID, "Weekend Trip", "Expenses for our weekend getaway", []string{u2.ID, u3.ID}},
		{u2.ID, "Office Expenses", "Shared expenses for our office", []string{u3.ID}},
		{u3.ID, "Project Alpha", "Expenses for our project", []string{u1.ID, u2.ID}},
	}

	var groups []*models.Group
	for _, g := range specs {
		group, err := s.groups.CreateGroup(ctx, g.caller, g.name, g.description, g.members)
		if err != nil {
			return nil, fmt.Errorf("seed group %q: %w", g.name, err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *Seeder) createOneOnOneExpenses(ctx context.Context, u1, u2, u3 *models.User) ([]*models.Expense, error) {
	inputs := []service.ExpenseInput{
		{
			Description:  "Dinner at Indian Restaurant",
			Amount:       amt("1250.00"),
			Category:     "foodDrink",
			Date:         daysAgo(14),
			PaidByUserID: u1.ID,
			SplitType:    models.SplitEqual,
			Participants: []string{u1.ID, u2.ID},
		},
		{
			Description:  "Cab ride to airport",
			Amount:       amt("450.00"),
			Category:     "transportation",
			Date:         daysAgo(7),
			PaidByUserID: u2.ID,
			SplitType:    models.SplitEqual,
			Participants: []string{u1.ID, u2.ID},
		},
		{
			Description:  "Movie tickets",
			Amount:       amt("500.00"),
			Category:     "entertainment",
			Date:         daysAgo(5),
			PaidByUserID: u3.ID,
			SplitType:    models.SplitEqual,
			Participants: []string{u2.ID, u3.ID},
		},
		{
			Description:  "Groceries",
			Amount:       amt("1875.50"),
			Category:     "groceries",
			Date:         daysAgo(30),
			PaidByUserID: u1.ID,
			SplitType:    models.SplitPercentage,
			Splits: []models.Split{
				{UserID: u1.ID, Amount: amt("1312.85")}, // 70%
				{UserID: u3.ID, Amount: amt("562.65")},  // 30%
			},
		},
		{
			Description:  "Internet bill",
			Amount:       amt("1200.00"),
			Category:     "utilities",
			Date:         daysAgo(3),
			PaidByUserID: u2.ID,
			SplitType:    models.SplitEqual,
			Participants: []string{u2.ID, u3.ID},
		},
	}

	var expenses []*models.Expense
	for _, in := range inputs {
		expense, err := s.ledger.RecordExpense(ctx, in.PaidByUserID, in)
		if err != nil {
			return nil, fmt.Errorf("seed expense %q: %w", in.Description, err)
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

func (s *Seeder) createGroupExpenses(ctx context.Context, u1, u2, u3 *models.User, groups []*models.Group) ([]*models.Expense, error) {
	weekendTrip, office, projectAlpha := groups[0], groups[1], groups[2]

	inputs := []service.ExpenseInput{
		// Weekend Trip
		{
			Description:  "Hotel reservation",
			Amount:       amt("9500.00"),
			Category:     "housing",
			Date:         daysAgo(14),
			PaidByUserID: u1.ID,
			SplitType:    models.SplitEqual,
			GroupID:      weekendTrip.ID,
			Splits: []models.Split{
				{UserID: u1.ID, Amount: amt("3166.67")},
				{UserID: u2.ID, Amount: amt("3166.67")},
				{UserID: u3.ID, Amount: amt("3166.66")},
			},
		},
		{
			Description:  "Groceries for weekend",
			Amount:       amt("2450.75"),
			Category:     "groceries",
			Date:         daysAgo(13),
			PaidByUserID: u2.ID,
			SplitType:    models.SplitEqual,
			GroupID:      weekendTrip.ID,
			Splits: []models.Split{
				{UserID: u1.ID, Amount: amt("816.92")},
				{UserID: u2.ID, Amount: amt("816.92")},
				{UserID: u3.ID, Amount: amt("816.91")},
			},
		},
		{
			Description:  "Sight-seeing tour",
			Amount:       amt("4500.00"),
			Category:     "entertainment",
			Date:         daysAgo(12),
			PaidByUserID: u3.ID,
			SplitType:    models.SplitEqual,
			GroupID:      weekendTrip.ID,
			Participants: []string{u1.ID, u2.ID, u3.ID},
		},
		// Office Expenses
		{
			Description:  "Coffee and snacks",
			Amount:       amt("850.00"),
			Category:     "coffee",
			Date:         daysAgo(7),
			PaidByUserID: u2.ID,
			SplitType:    models.SplitEqual,
			GroupID:      office.ID,
			Participants: []string{u2.ID, u3.ID},
		},
		{
			Description:  "Office supplies",
			Amount:       amt("1250.40"),
			Category:     "shopping",
			Date:         daysAgo(5),
			PaidByUserID: u3.ID,
			SplitType:    models.SplitEqual,
			GroupID:      office.ID,
			Participants: []string{u2.ID, u3.ID},
		},
		// Project Alpha
		{
			Description:  "Domain purchase",
			Amount:       amt("1200.00"),
			Category:     "technology",
			Date:         daysAgo(5),
			PaidByUserID: u3.ID,
			SplitType:    models.SplitEqual,
			GroupID:      projectAlpha.ID,
			Participants: []string{u1.ID, u2.ID, u3.ID},
		},
		{
			Description:  "Server hosting",
			Amount:       amt("3600.00"),
			Category:     "bills",
			Date:         daysAgo(4),
			PaidByUserID: u1.ID,
			SplitType:    models.SplitEqual,
			GroupID:      projectAlpha.ID,
			Participants: []string{u1.ID, u2.ID, u3.ID},
		},
		{
			Description:  "Project dinner",
			Amount:       amt("4800.60"),
			Category:     "foodDrink",
			Date:         daysAgo(2),
			PaidByUserID: u2.ID,
			SplitType:    models.SplitPercentage,
			GroupID:      projectAlpha.ID,
			Splits: []models.Split{
				{UserID: u1.ID, Amount: amt("1600.20")}, // 33.33%
				{UserID: u2.ID, Amount: amt("1600.20")}, // 33.33%
				{UserID: u3.ID, Amount: amt("1600.20")}, // 33.33%
			},
		},
	}

	var expenses []*models.Expense
	for _, in := range inputs {
		expense, err := s.ledger.RecordExpense(ctx, in.PaidByUserID, in)
		if err != nil {
			return nil, fmt.Errorf("seed expense %q: %w", in.Description, err)
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

func (s *Seeder) createSettlements(ctx context.Context, u1, u2, u3 *models.User, groups []*models.Group, oneOnOne, groupExpenses []*models.Expense) ([]*models.Settlement, error) {
	byDescription := func(expenses []*models.Expense, description string) string {
		for _, e := range expenses {
			if e.Description == description {
				return e.ID
			}
		}
		return ""
	}

	cabID := byDescription(oneOnOne, "Cab ride to airport")
	hotelID := byDescription(groupExpenses, "Hotel reservation")
	coffeeID := byDescription(groupExpenses, "Coffee and snacks")

	inputs := []service.SettlementInput{
		{
			Amount:            amt("225.00"),
			Note:              "For cab ride",
			Date:              daysAgo(5),
			PaidByUserID:      u1.ID,
			ReceivedByUserID:  u2.ID,
			RelatedExpenseIDs: []string{cabID},
		},
		{
			Amount:            amt("3166.67"),
			Note:              "Hotel payment",
			Date:              daysAgo(3),
			PaidByUserID:      u2.ID,
			ReceivedByUserID:  u1.ID,
			GroupID:           groups[0].ID,
			RelatedExpenseIDs: []string{hotelID},
		},
		{
			Amount:            amt("425.00"),
			Note:              "Office coffee",
			Date:              daysAgo(1),
			PaidByUserID:      u3.ID,
			ReceivedByUserID:  u2.ID,
			GroupID:           groups[1].ID,
			RelatedExpenseIDs: []string{coffeeID},
		},
	}

	var settlements []*models.Settlement
	for _, in := range inputs {
		settlement, err := s.ledger.RecordSettlement(ctx, in.PaidByUserID, in)
		if err != nil {
			return nil, fmt.Errorf("seed settlement %q: %w", in.Note, err)
		}
		settlements = append(settlements, settlement)
	}
	return settlements, nil
}
