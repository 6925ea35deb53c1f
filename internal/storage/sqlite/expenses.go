package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/parthgupta9/splitr/internal/models"
)

const expenseColumns = "id, description, amount, category, date, paid_by_user_id, split_type, group_id, created_by, created_at"

// CreateExpense persists a new expense, its splits, and the participant
// index rows in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID any
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, category, date, paid_by_user_id, split_type, group_id, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.Amount.String(), expense.Category,
		expense.Date, expense.PaidByUserID, string(expense.SplitType), groupID,
		expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount, paid) VALUES (?, ?, ?, ?)",
			expense.ID, split.UserID, split.Amount.String(), split.Paid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	// Maintain the participant index so reads never scan the whole ledger.
	for _, userID := range expense.ParticipantIDs() {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (user_id, expense_id) VALUES (?, ?)",
			userID, expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including all splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", expenseID)

	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.attachSplits(ctx, []*models.Expense{expense}); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpensesByUser retrieves every expense the user participates in,
// newest first, via the participant index.
func (s *SQLiteStore) ListExpensesByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE id IN (SELECT expense_id FROM expense_participants WHERE user_id = ?)
		 ORDER BY date DESC, id`,
		userID,
	)
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = ? ORDER BY date DESC, id",
		groupID,
	)
}

// ListExpensesBetweenUsers retrieves one-on-one expenses both users
// participate in, newest first. Group expenses are excluded; they belong to
// the group ledger.
func (s *SQLiteStore) ListExpensesBetweenUsers(ctx context.Context, userA, userB string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE group_id IS NULL
		   AND id IN (SELECT expense_id FROM expense_participants WHERE user_id = ?)
		   AND id IN (SELECT expense_id FROM expense_participants WHERE user_id = ?)
		 ORDER BY date DESC, id`,
		userA, userB,
	)
}

// CountExpenses returns the total number of stored expenses.
func (s *SQLiteStore) CountExpenses(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.attachSplits(ctx, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount string
	var groupID sql.NullString
	var splitType string

	err := row.Scan(
		&expense.ID,
		&expense.Description,
		&amount,
		&expense.Category,
		&expense.Date,
		&expense.PaidByUserID,
		&splitType,
		&groupID,
		&expense.CreatedBy,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Amount, err = scanAmount(amount)
	if err != nil {
		return nil, err
	}
	expense.SplitType = models.SplitType(splitType)
	if groupID.Valid {
		expense.GroupID = groupID.String
	}

	return expense, nil
}

func (s *SQLiteStore) attachSplits(ctx context.Context, expenses []*models.Expense) error {
	for _, expense := range expenses {
		rows, err := s.db.QueryContext(ctx,
			"SELECT user_id, amount, paid FROM expense_splits WHERE expense_id = ?",
			expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get expense splits: %w", err)
		}

		for rows.Next() {
			var split models.Split
			var amount string
			if err := rows.Scan(&split.UserID, &amount, &split.Paid); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan expense split: %w", err)
			}
			split.Amount, err = scanAmount(amount)
			if err != nil {
				rows.Close()
				return err
			}
			expense.Splits = append(expense.Splits, split)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed to iterate expense splits: %w", err)
		}
		rows.Close()
	}

	return nil
}
