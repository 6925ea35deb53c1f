package service

import (
	"context"
	"testing"

	apperr "github.com/parthgupta9/splitr/internal/errors"
	"github.com/parthgupta9/splitr/internal/models"
)

func TestGetContacts(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	ledgerSvc := NewLedgerService(store)
	svc := NewContactService(store)
	ctx := context.Background()

	u1 := mustCreateUser(t, store, "c1@example.com", "One")
	u2 := mustCreateUser(t, store, "c2@example.com", "Two")
	u3 := mustCreateUser(t, store, "c3@example.com", "Three")
	stranger := mustCreateUser(t, store, "c4@example.com", "Stranger")

	// u1 pays dinner split with u2; u3 pays a cab split with u1.
	if _, err := ledgerSvc.RecordExpense(ctx, u1.ID, ExpenseInput{
		Description:  "Dinner",
		Amount:       amt("1250.00"),
		PaidByUserID: u1.ID,
		SplitType:    models.SplitEqual,
		Splits: []models.Split{
			{UserID: u1.ID, Amount: amt("625.00")},
			{UserID: u2.ID, Amount: amt("625.00")},
		},
	}); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
	if _, err := ledgerSvc.RecordExpense(ctx, u3.ID, ExpenseInput{
		Description:  "Cab",
		Amount:       amt("450.00"),
		PaidByUserID: u3.ID,
		SplitType:    models.SplitEqual,
		Splits: []models.Split{
			{UserID: u1.ID, Amount: amt("225.00")},
			{UserID: u3.ID, Amount: amt("225.00")},
		},
	}); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	group, err := groups.CreateGroup(ctx, u1.ID, "Weekend Trip", "Goa", []string{u2.ID})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("counterparties from both directions, caller excluded", func(t *testing.T) {
		contacts, err := svc.GetContacts(ctx, u1.ID)
		if err != nil {
			t.Fatalf("GetContacts failed: %v", err)
		}

		ids := make(map[string]bool, len(contacts.Users))
		for _, u := range contacts.Users {
			ids[u.ID] = true
		}
		if !ids[u2.ID] || !ids[u3.ID] {
			t.Errorf("contacts = %v, want both %s and %s", ids, u2.ID, u3.ID)
		}
		if ids[u1.ID] {
			t.Error("caller appears in their own contacts")
		}
		if ids[stranger.ID] {
			t.Error("user with no shared history appears in contacts")
		}

		if len(contacts.Groups) != 1 {
			t.Fatalf("got %d groups, want 1", len(contacts.Groups))
		}
		summary := contacts.Groups[0]
		if summary.ID != group.ID || summary.MemberCount != 2 {
			t.Errorf("group summary = %+v, want id=%s members=2", summary, group.ID)
		}
	})

	t.Run("no history yields empty contacts", func(t *testing.T) {
		contacts, err := svc.GetContacts(ctx, stranger.ID)
		if err != nil {
			t.Fatalf("GetContacts failed: %v", err)
		}
		if len(contacts.Users) != 0 || len(contacts.Groups) != 0 {
			t.Errorf("contacts = %+v, want empty", contacts)
		}
	})

	t.Run("unauthenticated caller rejected", func(t *testing.T) {
		_, err := svc.GetContacts(ctx, "")
		if !apperr.Is(err, apperr.CodeUnauthenticated) {
			t.Errorf("error code = %s, want %s", apperr.CodeOf(err), apperr.CodeUnauthenticated)
		}
	})
}
