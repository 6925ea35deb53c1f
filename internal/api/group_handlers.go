package api

import (
	"net/http"

	"github.com/gorilla/mux"

	apperr "github.com/parthgupta9/splitr/internal/errors"
	"github.com/parthgupta9/splitr/internal/middleware"
)

type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"memberIds"`
}

func (a *API) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		writeError(w, apperr.New(apperr.CodeUnauthenticated, "no caller identity"))
		return
	}
	var req createGroupRequest
	if !decode(w, r, &req) {
		return
	}
	group, err := a.groups.CreateGroup(r.Context(), callerID, req.Name, req.Description, req.MemberIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupDTO(group))
}

func (a *API) handleListGroups(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		writeError(w, apperr.New(apperr.CodeUnauthenticated, "no caller identity"))
		return
	}
	groups, err := a.groups.ListGroups(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]groupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, toGroupDTO(g))
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": dtos})
}

func (a *API) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		writeError(w, apperr.New(apperr.CodeUnauthenticated, "no caller identity"))
		return
	}
	group, err := a.groups.GetGroup(r.Context(), callerID, mux.Vars(r)["groupId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupDTO(group))
}

type groupLedgerResponse struct {
	Group       groupDTO           `json:"group"`
	Expenses    []expenseDTO       `json:"expenses"`
	Settlements []settlementDTO    `json:"settlements"`
	Balances    []memberBalanceDTO `json:"balances"`
	Debts       []debtEdgeDTO      `json:"debts"`
}

func (a *API) handleGroupLedger(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		writeError(w, apperr.New(apperr.CodeUnauthenticated, "no caller identity"))
		return
	}
	led, err := a.ledger.GetGroupLedger(r.Context(), callerID, mux.Vars(r)["groupId"])
	if err != nil {
		writeError(w, err)
		return
	}
	balances, debts := toBalanceDTOs(led.Balances, led.Debts)
	writeJSON(w, http.StatusOK, groupLedgerResponse{
		Group:       toGroupDTO(led.Group),
		Expenses:    toExpenseDTOs(led.Expenses),
		Settlements: toSettlementDTOs(led.Settlements),
		Balances:    balances,
		Debts:       debts,
	})
}
