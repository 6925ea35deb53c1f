package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/parthgupta9/splitr/internal/models"
)

func expense(paidBy string, total string, splits ...models.Split) *models.Expense {
	return &models.Expense{
		PaidByUserID: paidBy,
		Amount:       amt(total),
		SplitType:    models.SplitEqual,
		Splits:       splits,
	}
}

func TestNetBalance(t *testing.T) {
	dinner := expense("u1", "1250.00",
		models.Split{UserID: "u1", Amount: amt("625.00"), Paid: true},
		models.Split{UserID: "u2", Amount: amt("625.00")},
	)
	cab := expense("u2", "450.00",
		models.Split{UserID: "u1", Amount: amt("225.00")},
		models.Split{UserID: "u2", Amount: amt("225.00"), Paid: true},
	)

	tests := []struct {
		name        string
		expenses    []*models.Expense
		settlements []*models.Settlement
		want        string // positive = u1 owes u2
	}{
		{
			name:     "single expense paid by counterparty",
			expenses: []*models.Expense{cab},
			want:     "225.00",
		},
		{
			name:     "expenses in both directions offset",
			expenses: []*models.Expense{dinner, cab},
			want:     "-400.00", // u2 owes u1 625, u1 owes u2 225
		},
		{
			name:     "settlement clears the debt",
			expenses: []*models.Expense{cab},
			settlements: []*models.Settlement{
				{PaidByUserID: "u1", ReceivedByUserID: "u2", Amount: amt("225.00")},
			},
			want: "0",
		},
		{
			name:     "settlement received counts against the receiver",
			expenses: []*models.Expense{dinner},
			settlements: []*models.Settlement{
				{PaidByUserID: "u2", ReceivedByUserID: "u1", Amount: amt("300.00")},
			},
			want: "-325.00",
		},
		{
			name: "paid flags are ignored",
			expenses: []*models.Expense{
				expense("u2", "450.00",
					models.Split{UserID: "u1", Amount: amt("225.00"), Paid: true},
					models.Split{UserID: "u2", Amount: amt("225.00"), Paid: true},
				),
			},
			want: "225.00",
		},
		{
			name: "empty history",
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetBalance("u1", "u2", tt.expenses, tt.settlements)
			if !got.Equal(amt(tt.want)) {
				t.Errorf("NetBalance = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGroupBalances(t *testing.T) {
	expenses := []*models.Expense{
		expense("u1", "9500.00",
			models.Split{UserID: "u1", Amount: amt("3166.67"), Paid: true},
			models.Split{UserID: "u2", Amount: amt("3166.67")},
			models.Split{UserID: "u3", Amount: amt("3166.66")},
		),
		expense("u2", "2450.75",
			models.Split{UserID: "u1", Amount: amt("816.92")},
			models.Split{UserID: "u2", Amount: amt("816.92"), Paid: true},
			models.Split{UserID: "u3", Amount: amt("816.91")},
		),
	}

	balances, debts := GroupBalances(expenses, nil)

	if len(balances) != 3 {
		t.Fatalf("got %d balances, want 3", len(balances))
	}

	byUser := make(map[string]MemberBalance, len(balances))
	for _, b := range balances {
		byUser[b.UserID] = b
	}

	wantNet := map[string]string{
		"u1": "5516.41",  // paid 9500, owes 3166.67 + 816.92
		"u2": "-1532.84", // paid 2450.75, owes 3166.67 + 816.92
		"u3": "-3983.57", // paid nothing, owes 3166.66 + 816.91
	}
	for user, want := range wantNet {
		if got := byUser[user].NetBalance; !got.Equal(amt(want)) {
			t.Errorf("%s net balance = %s, want %s", user, got, want)
		}
	}

	// Net balances always sum to zero.
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.NetBalance)
	}
	if !sum.IsZero() {
		t.Errorf("net balances sum to %s, want 0", sum)
	}

	// Both debtors resolve against the single creditor.
	if len(debts) != 2 {
		t.Fatalf("got %d debt edges, want 2: %+v", len(debts), debts)
	}
	for _, d := range debts {
		if d.To != "u1" {
			t.Errorf("debt edge points at %s, want u1", d.To)
		}
	}

	settled := decimal.Zero
	for _, d := range debts {
		settled = settled.Add(d.Amount)
	}
	if !settled.Equal(amt("5516.41")) {
		t.Errorf("debt edges sum to %s, want 5516.41", settled)
	}
}

func TestGroupBalancesSettlementShiftsBalance(t *testing.T) {
	expenses := []*models.Expense{
		expense("u1", "100.00",
			models.Split{UserID: "u1", Amount: amt("50.00"), Paid: true},
			models.Split{UserID: "u2", Amount: amt("50.00")},
		),
	}
	settlements := []*models.Settlement{
		{PaidByUserID: "u2", ReceivedByUserID: "u1", Amount: amt("50.00")},
	}

	balances, debts := GroupBalances(expenses, settlements)
	for _, b := range balances {
		if !b.NetBalance.IsZero() {
			t.Errorf("%s net balance = %s, want 0 after full settlement", b.UserID, b.NetBalance)
		}
	}
	if len(debts) != 0 {
		t.Errorf("got %d debt edges, want none: %+v", len(debts), debts)
	}
}
