package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/parthgupta9/splitr/internal/models"
)

// MemberBalance represents the balance information for one user across a set
// of expenses and settlements.
type MemberBalance struct {
	UserID     string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal // Amount fronted across expenses plus settlements sent
	TotalOwed  decimal.Decimal // Split shares plus settlements received
}

// DebtEdge represents a debt from one user to another.
type DebtEdge struct {
	From   string // User who owes
	To     string // User who is owed
	Amount decimal.Decimal
}

// NetBalance computes the signed balance between two users from raw expense
// and settlement history. Positive means userA owes userB.
//
// The split Paid flags are deliberately ignored: settlements are the only
// record of repayment, so the result stays correct even when a settlement
// predates or postdates the flag.
func NetBalance(userA, userB string, expenses []*models.Expense, settlements []*models.Settlement) decimal.Decimal {
	net := decimal.Zero

	for _, e := range expenses {
		switch e.PaidByUserID {
		case userB:
			if s := e.SplitFor(userA); s != nil {
				net = net.Add(s.Amount)
			}
		case userA:
			if s := e.SplitFor(userB); s != nil {
				net = net.Sub(s.Amount)
			}
		}
	}

	for _, s := range settlements {
		switch {
		case s.PaidByUserID == userA && s.ReceivedByUserID == userB:
			net = net.Sub(s.Amount)
		case s.PaidByUserID == userB && s.ReceivedByUserID == userA:
			net = net.Add(s.Amount)
		}
	}

	return net
}

// GroupBalances computes balances across a set of expenses and settlements.
// It aggregates who paid what and who owes what, returning both individual
// member balances and a simplified debt matrix.
//
// Algorithm:
//   - For each expense: payer fronted +amount, each split holder owes their share
//   - For each settlement: payer's balance improves, receiver's decreases
//   - net_balance = total_paid - total_owed
//   - Debt matrix: greedy matching of largest debtors against largest creditors
func GroupBalances(expenses []*models.Expense, settlements []*models.Settlement) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)

	get := func(userID string) *MemberBalance {
		b, ok := balances[userID]
		if !ok {
			b = &MemberBalance{
				UserID:     userID,
				NetBalance: decimal.Zero,
				TotalPaid:  decimal.Zero,
				TotalOwed:  decimal.Zero,
			}
			balances[userID] = b
		}
		return b
	}

	for _, e := range expenses {
		get(e.PaidByUserID).TotalPaid = get(e.PaidByUserID).TotalPaid.Add(e.Amount)
		for _, s := range e.Splits {
			get(s.UserID).TotalOwed = get(s.UserID).TotalOwed.Add(s.Amount)
		}
	}

	for _, s := range settlements {
		get(s.PaidByUserID).TotalPaid = get(s.PaidByUserID).TotalPaid.Add(s.Amount)
		get(s.ReceivedByUserID).TotalOwed = get(s.ReceivedByUserID).TotalOwed.Add(s.Amount)
	}

	var memberBalances []MemberBalance
	for _, b := range balances {
		b.NetBalance = b.TotalPaid.Sub(b.TotalOwed)
		memberBalances = append(memberBalances, *b)
	}

	// Stable output order keeps the debt matching deterministic.
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].UserID < memberBalances[j].UserID
	})

	return memberBalances, simplifyDebts(memberBalances)
}

// simplifyDebts matches debtors against creditors to minimize the number of
// payments that would settle the set.
func simplifyDebts(memberBalances []MemberBalance) []DebtEdge {
	var debtors, creditors []MemberBalance
	for _, b := range memberBalances {
		switch {
		case b.NetBalance.LessThan(Tolerance.Neg()):
			debtors = append(debtors, b)
		case b.NetBalance.GreaterThan(Tolerance):
			creditors = append(creditors, b)
		}
	}

	owes := make(map[string]decimal.Decimal, len(debtors))
	for _, d := range debtors {
		owes[d.UserID] = d.NetBalance.Neg()
	}
	owed := make(map[string]decimal.Decimal, len(creditors))
	for _, c := range creditors {
		owed[c.UserID] = c.NetBalance
	}

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].UserID
		creditor := creditors[j].UserID

		amount := decimal.Min(owes[debtor], owed[creditor])
		if amount.GreaterThan(Tolerance) {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
		}

		owes[debtor] = owes[debtor].Sub(amount)
		owed[creditor] = owed[creditor].Sub(amount)

		if owes[debtor].LessThanOrEqual(Tolerance) {
			i++
		}
		if owed[creditor].LessThanOrEqual(Tolerance) {
			j++
		}
	}

	return edges
}
