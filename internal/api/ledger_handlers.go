package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	apperr "github.com/parthgupta9/splitr/internal/errors"
	"github.com/parthgupta9/splitr/internal/middleware"
	"github.com/parthgupta9/splitr/internal/models"
	"github.com/parthgupta9/splitr/internal/service"
)

type splitInput struct {
	UserID string          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
}

type recordExpenseRequest struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Date         int64           `json:"date"`
	PaidByUserID string          `json:"paidByUserId"`
	SplitType    string          `json:"splitType"`
	Splits       []splitInput    `json:"splits"`
	Participants []string        `json:"participants"`
	GroupID      string          `json:"groupId"`
}

func (a *API) handleRecordExpense(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		writeError(w, apperr.New(apperr.CodeUnauthenticated, "no caller identity"))
		return
	}
	var req recordExpenseRequest
	if !decode(w, r, &req) {
		return
	}
	in := service.ExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		Category:     req.Category,
		Date:         req.Date,
		PaidByUserID: req.PaidByUserID,
		SplitType:    models.SplitType(req.SplitType),
		Participants: req.Participants,
		GroupID:      req.GroupID,
	}
	for _, s := range req.Splits {
		in.Splits = append(in.Splits, models.Split{UserID: s.UserID, Amount: s.Amount})
	}
	expense, err := a.ledger.RecordExpense(r.Context(), callerID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(expense))
}

type recordSettlementRequest struct {
	Amount            decimal.Decimal `json:"amount"`
	Note              string          `json:"note"`
	Date              int64           `json:"date"`
	PaidByUserID      string          `json:"paidByUserId"`
	ReceivedByUserID  string          `json:"receivedByUserId"`
	RelatedExpenseIDs []string        `json:"relatedExpenseIds"`
	GroupID           string          `json:"groupId"`
}

func (a *API) handleRecordSettlement(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		writeError(w, apperr.New(apperr.CodeUnauthenticated, "no caller identity"))
		return
	}
	var req recordSettlementRequest
	if !decode(w, r, &req) {
		return
	}
	settlement, err := a.ledger.RecordSettlement(r.Context(), callerID, service.SettlementInput{
		Amount:            req.Amount,
		Note:              req.Note,
		Date:              req.Date,
		PaidByUserID:      req.PaidByUserID,
		ReceivedByUserID:  req.ReceivedByUserID,
		RelatedExpenseIDs: req.RelatedExpenseIDs,
		GroupID:           req.GroupID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSettlementDTO(settlement))
}

type pairLedgerResponse struct {
	Other       userDTO         `json:"other"`
	Expenses    []expenseDTO    `json:"expenses"`
	Settlements []settlementDTO `json:"settlements"`
	NetBalance  decimal.Decimal `json:"netBalance"`
}

func (a *API) handlePairLedger(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		writeError(w, apperr.New(apperr.CodeUnauthenticated, "no caller identity"))
		return
	}
	led, err := a.ledger.GetPairLedger(r.Context(), callerID, mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pairLedgerResponse{
		Other:       toUserDTO(led.Other),
		Expenses:    toExpenseDTOs(led.Expenses),
		Settlements: toSettlementDTOs(led.Settlements),
		NetBalance:  led.NetBalance,
	})
}
