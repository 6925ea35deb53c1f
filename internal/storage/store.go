// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/parthgupta9/splitr/internal/models"
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Every Create call runs as a single transaction: either the record and all
// of its child rows (splits, members, index entries) land together, or
// nothing does.
type Store interface {
	// CreateUser persists a new user. Fails if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID. Returns (nil, nil) if not found.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) if not found.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. Missing users are
	// omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers retrieves all users ordered by creation time.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateGroup persists a new group with its members.
	// The group.ID field will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, including members.
	// Returns nil and an error if the group is not found.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember retrieves every group the user belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// CreateExpense persists a new expense with its splits and maintains the
	// participant index in the same transaction.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByUser retrieves every expense the user participates in,
	// as payer or split holder, via the participant index.
	ListExpensesByUser(ctx context.Context, userID string) ([]*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses for a group, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListExpensesBetweenUsers retrieves one-on-one expenses both users
	// participate in. Group expenses are excluded.
	ListExpensesBetweenUsers(ctx context.Context, userA, userB string) ([]*models.Expense, error)

	// CountExpenses returns the total number of stored expenses.
	CountExpenses(ctx context.Context) (int64, error)

	// CreateSettlement persists a new settlement and its related-expense
	// references.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlementsBetweenUsers retrieves settlements in either direction
	// between the two users.
	ListSettlementsBetweenUsers(ctx context.Context, userA, userB string) ([]*models.Settlement, error)

	// ListSettlementsByGroup retrieves all settlements for a group, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// Seeded reports whether the fixture set identified by version has run.
	Seeded(ctx context.Context, version string) (bool, error)

	// MarkSeeded records that the fixture set identified by version has run.
	MarkSeeded(ctx context.Context, version string) error

	// Close releases any resources held by the store.
	Close() error
}
