package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parthgupta9/splitr/internal/ledger"
	"github.com/parthgupta9/splitr/internal/models"
	"github.com/parthgupta9/splitr/internal/service"
	"github.com/parthgupta9/splitr/internal/storage/sqlite"
)

func newTestSeeder(t *testing.T) (*Seeder, *sqlite.SQLiteStore) {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitr-seed-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(store, service.NewGroupService(store), service.NewLedgerService(store)), store
}

func seedUsers(t *testing.T, store *sqlite.SQLiteStore, n int) []*models.User {
	t.Helper()
	emails := []string{"rahul@example.com", "priya@example.com", "amit@example.com"}
	names := []string{"Rahul", "Priya", "Amit"}
	base := time.Now().UnixMilli()
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.NewUser(emails[i], names[i], "")
		// Strictly increasing creation times keep ListUsers order stable.
		user.CreatedAt = base + int64(i)
		if err := store.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		users = append(users, user)
	}
	return users
}

func TestSeederRun(t *testing.T) {
	seeder, store := newTestSeeder(t)
	ctx := context.Background()
	users := seedUsers(t, store, 3)

	result, err := seeder.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Skipped {
		t.Fatalf("first run skipped: %s", result.Reason)
	}

	stats := result.Stats
	if stats.Users != 3 || stats.Groups != 3 || stats.OneOnOneExpenses != 5 ||
		stats.GroupExpenses != 8 || stats.Settlements != 3 {
		t.Errorf("stats = %+v, want 3 users, 3 groups, 5+8 expenses, 3 settlements", stats)
	}

	count, err := store.CountExpenses(ctx)
	if err != nil {
		t.Fatalf("CountExpenses failed: %v", err)
	}
	if count != 13 {
		t.Errorf("expense count = %d, want 13", count)
	}

	t.Run("every expense honors the split-sum invariant", func(t *testing.T) {
		for _, user := range users {
			expenses, err := store.ListExpensesByUser(ctx, user.ID)
			if err != nil {
				t.Fatalf("ListExpensesByUser failed: %v", err)
			}
			for _, e := range expenses {
				if err := ledger.ValidateSplits(e.SplitType, e.Amount, e.Splits); err != nil {
					t.Errorf("expense %q violates split invariant: %v", e.Description, err)
				}
			}
		}
	})

	t.Run("settlements keep referenced splits unpaid", func(t *testing.T) {
		settlements, err := store.ListSettlementsBetweenUsers(ctx, users[0].ID, users[1].ID)
		if err != nil {
			t.Fatalf("ListSettlementsBetweenUsers failed: %v", err)
		}
		if len(settlements) == 0 {
			t.Fatal("expected at least one settlement between the first two users")
		}
		for _, s := range settlements {
			for _, expenseID := range s.RelatedExpenseIDs {
				e, err := store.GetExpense(ctx, expenseID)
				if err != nil {
					t.Fatalf("GetExpense failed: %v", err)
				}
				for _, split := range e.Splits {
					if split.UserID != e.PaidByUserID && split.Paid {
						t.Errorf("expense %q split for %s flipped paid by settlement", e.Description, split.UserID)
					}
				}
			}
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		result, err := seeder.Run(ctx)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !result.Skipped {
			t.Fatal("second run was not skipped")
		}

		count, err := store.CountExpenses(ctx)
		if err != nil {
			t.Fatalf("CountExpenses failed: %v", err)
		}
		if count != 13 {
			t.Errorf("expense count = %d after second run, want 13", count)
		}
	})
}

func TestSeederRequiresThreeUsers(t *testing.T) {
	seeder, store := newTestSeeder(t)
	ctx := context.Background()
	seedUsers(t, store, 2)

	result, err := seeder.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Skipped {
		t.Fatal("run with two users was not skipped")
	}

	count, err := store.CountExpenses(ctx)
	if err != nil {
		t.Fatalf("CountExpenses failed: %v", err)
	}
	if count != 0 {
		t.Errorf("skipped run wrote %d expenses", count)
	}
}

func TestSeederSkipsNonEmptyLedger(t *testing.T) {
	seeder, store := newTestSeeder(t)
	ledgerSvc := service.NewLedgerService(store)
	ctx := context.Background()
	users := seedUsers(t, store, 3)

	// One pre-existing expense means the ledger is not fresh.
	if _, err := ledgerSvc.RecordExpense(ctx, users[0].ID, service.ExpenseInput{
		Description:  "Existing",
		Amount:       amt("100.00"),
		PaidByUserID: users[0].ID,
		SplitType:    models.SplitEqual,
		Splits: []models.Split{
			{UserID: users[0].ID, Amount: amt("50.00")},
			{UserID: users[1].ID, Amount: amt("50.00")},
		},
	}); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	result, err := seeder.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Skipped {
		t.Fatal("run on non-empty ledger was not skipped")
	}

	count, err := store.CountExpenses(ctx)
	if err != nil {
		t.Fatalf("CountExpenses failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expense count = %d, want the 1 pre-existing expense", count)
	}
}
