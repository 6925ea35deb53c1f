package service

import (
	"context"

	apperr "github.com/parthgupta9/splitr/internal/errors"
	"github.com/parthgupta9/splitr/internal/models"
	"github.com/parthgupta9/splitr/internal/storage"
)

// ContactService derives the "contacts" view: everyone the caller has
// transacted with, plus the caller's groups.
type ContactService struct {
	store storage.Store
}

// NewContactService creates a new ContactService with the given storage backend.
func NewContactService(store storage.Store) *ContactService {
	return &ContactService{store: store}
}

// Contacts is the counterparty and group view for one user. Neither slice
// carries a required order; callers needing stable display order sort.
type Contacts struct {
	Users  []*models.User
	Groups []models.GroupSummary
}

// GetContacts collects every counterparty from the caller's expense history
// and every group the caller belongs to.
//
// The caller never appears in the counterparty set. A counterparty that
// cannot be resolved to a user record fails the call; the append-only
// lifecycle should make that impossible, but a dangling reference must not
// be silently dropped.
func (s *ContactService) GetContacts(ctx context.Context, callerID string) (*Contacts, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "no caller identity")
	}

	expenses, err := s.store.ListExpensesByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var counterpartyIDs []string
	add := func(id string) {
		if id != callerID && !seen[id] {
			seen[id] = true
			counterpartyIDs = append(counterpartyIDs, id)
		}
	}
	for _, e := range expenses {
		add(e.PaidByUserID)
		for _, split := range e.Splits {
			add(split.UserID)
		}
	}

	users, err := s.store.GetUsersByIDs(ctx, counterpartyIDs)
	if err != nil {
		return nil, err
	}

	contacts := &Contacts{}
	for _, id := range counterpartyIDs {
		user := users[id]
		if user == nil {
			return nil, apperr.NotFound("user", id)
		}
		contacts.Users = append(contacts.Users, user)
	}

	groups, err := s.store.ListGroupsByMember(ctx, callerID)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		contacts.Groups = append(contacts.Groups, models.GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			MemberCount: len(g.Members),
		})
	}

	return contacts, nil
}
