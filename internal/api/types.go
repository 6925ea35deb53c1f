package api

import (
	"github.com/shopspring/decimal"

	"github.com/parthgupta9/splitr/internal/ledger"
	"github.com/parthgupta9/splitr/internal/models"
)

// Wire shapes. Amounts serialize as decimal strings.

type userDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

type memberDTO struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

type groupDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	CreatedBy   string      `json:"createdBy"`
	Members     []memberDTO `json:"members"`
	CreatedAt   int64       `json:"createdAt"`
}

func toGroupDTO(g *models.Group) groupDTO {
	dto := groupDTO{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
	}
	for _, m := range g.Members {
		dto.Members = append(dto.Members, memberDTO{
			UserID:   m.UserID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}
	return dto
}

type groupSummaryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"memberCount"`
}

type splitDTO struct {
	UserID string          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
	Paid   bool            `json:"paid"`
}

type expenseDTO struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category,omitempty"`
	Date         int64           `json:"date"`
	PaidByUserID string          `json:"paidByUserId"`
	SplitType    string          `json:"splitType"`
	Splits       []splitDTO      `json:"splits"`
	GroupID      string          `json:"groupId,omitempty"`
	CreatedBy    string          `json:"createdBy"`
	CreatedAt    int64           `json:"createdAt"`
}

func toExpenseDTO(e *models.Expense) expenseDTO {
	dto := expenseDTO{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount,
		Category:     e.Category,
		Date:         e.Date,
		PaidByUserID: e.PaidByUserID,
		SplitType:    string(e.SplitType),
		GroupID:      e.GroupID,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
	}
	for _, s := range e.Splits {
		dto.Splits = append(dto.Splits, splitDTO{UserID: s.UserID, Amount: s.Amount, Paid: s.Paid})
	}
	return dto
}

func toExpenseDTOs(expenses []*models.Expense) []expenseDTO {
	dtos := make([]expenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, toExpenseDTO(e))
	}
	return dtos
}

type settlementDTO struct {
	ID                string          `json:"id"`
	Amount            decimal.Decimal `json:"amount"`
	Note              string          `json:"note,omitempty"`
	Date              int64           `json:"date"`
	PaidByUserID      string          `json:"paidByUserId"`
	ReceivedByUserID  string          `json:"receivedByUserId"`
	RelatedExpenseIDs []string        `json:"relatedExpenseIds,omitempty"`
	GroupID           string          `json:"groupId,omitempty"`
	CreatedBy         string          `json:"createdBy"`
	CreatedAt         int64           `json:"createdAt"`
}

func toSettlementDTO(s *models.Settlement) settlementDTO {
	return settlementDTO{
		ID:                s.ID,
		Amount:            s.Amount,
		Note:              s.Note,
		Date:              s.Date,
		PaidByUserID:      s.PaidByUserID,
		ReceivedByUserID:  s.ReceivedByUserID,
		RelatedExpenseIDs: s.RelatedExpenseIDs,
		GroupID:           s.GroupID,
		CreatedBy:         s.CreatedBy,
		CreatedAt:         s.CreatedAt,
	}
}

func toSettlementDTOs(settlements []*models.Settlement) []settlementDTO {
	dtos := make([]settlementDTO, 0, len(settlements))
	for _, s := range settlements {
		dtos = append(dtos, toSettlementDTO(s))
	}
	return dtos
}

type memberBalanceDTO struct {
	UserID     string          `json:"userId"`
	NetBalance decimal.Decimal `json:"netBalance"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	TotalOwed  decimal.Decimal `json:"totalOwed"`
}

type debtEdgeDTO struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

func toBalanceDTOs(balances []ledger.MemberBalance, debts []ledger.DebtEdge) ([]memberBalanceDTO, []debtEdgeDTO) {
	balanceDTOs := make([]memberBalanceDTO, 0, len(balances))
	for _, b := range balances {
		balanceDTOs = append(balanceDTOs, memberBalanceDTO{
			UserID:     b.UserID,
			NetBalance: b.NetBalance,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
		})
	}
	debtDTOs := make([]debtEdgeDTO, 0, len(debts))
	for _, d := range debts {
		debtDTOs = append(debtDTOs, debtEdgeDTO{From: d.From, To: d.To, Amount: d.Amount})
	}
	return balanceDTOs, debtDTOs
}
