package api

import (
	"net/http"

	apperr "github.com/parthgupta9/splitr/internal/errors"
	"github.com/parthgupta9/splitr/internal/middleware"
)

type contactsResponse struct {
	Users  []userDTO         `json:"users"`
	Groups []groupSummaryDTO `json:"groups"`
}

func (a *API) handleGetContacts(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		writeError(w, apperr.New(apperr.CodeUnauthenticated, "no caller identity"))
		return
	}
	contacts, err := a.contacts.GetContacts(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := contactsResponse{
		Users:  make([]userDTO, 0, len(contacts.Users)),
		Groups: make([]groupSummaryDTO, 0, len(contacts.Groups)),
	}
	for _, u := range contacts.Users {
		resp.Users = append(resp.Users, toUserDTO(u))
	}
	for _, g := range contacts.Groups {
		resp.Groups = append(resp.Groups, groupSummaryDTO{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			MemberCount: g.MemberCount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type seedResponse struct {
	Skipped bool       `json:"skipped"`
	Reason  string     `json:"reason,omitempty"`
	Stats   *seedStats `json:"stats,omitempty"`
}

type seedStats struct {
	Users            int `json:"users"`
	Groups           int `json:"groups"`
	OneOnOneExpenses int `json:"oneOnOneExpenses"`
	GroupExpenses    int `json:"groupExpenses"`
	Settlements      int `json:"settlements"`
}

func (a *API) handleSeed(w http.ResponseWriter, r *http.Request) {
	result, err := a.seeder.Run(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := seedResponse{Skipped: result.Skipped, Reason: result.Reason}
	if result.Stats != nil {
		resp.Stats = &seedStats{
			Users:            result.Stats.Users,
			Groups:           result.Stats.Groups,
			OneOnOneExpenses: result.Stats.OneOnOneExpenses,
			GroupExpenses:    result.Stats.GroupExpenses,
			Settlements:      result.Stats.Settlements,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
