package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/parthgupta9/splitr/internal/models"
)

const settlementColumns = "id, amount, note, date, paid_by_user_id, received_by_user_id, group_id, created_by, created_at"

// CreateSettlement persists a new settlement and its related-expense
// references in one transaction.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var note any
	if settlement.Note != "" {
		note = settlement.Note
	}
	var groupID any
	if settlement.GroupID != "" {
		groupID = settlement.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (id, amount, note, date, paid_by_user_id, received_by_user_id, group_id, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.Amount.String(), note, settlement.Date,
		settlement.PaidByUserID, settlement.ReceivedByUserID, groupID,
		settlement.CreatedBy, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for _, expenseID := range settlement.RelatedExpenseIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO settlement_expenses (settlement_id, expense_id) VALUES (?, ?)",
			settlement.ID, expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement expense reference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE id = ?", settlementID)

	settlement, err := scanSettlement(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("settlement not found: %s", settlementID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	if err := s.attachRelatedExpenses(ctx, []*models.Settlement{settlement}); err != nil {
		return nil, err
	}

	return settlement, nil
}

// ListSettlementsBetweenUsers retrieves settlements in either direction
// between the two users, newest first.
func (s *SQLiteStore) ListSettlementsBetweenUsers(ctx context.Context, userA, userB string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		`SELECT `+settlementColumns+` FROM settlements
		 WHERE (paid_by_user_id = ? AND received_by_user_id = ?)
		    OR (paid_by_user_id = ? AND received_by_user_id = ?)
		 ORDER BY date DESC, id`,
		userA, userB, userB, userA,
	)
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE group_id = ? ORDER BY date DESC, id",
		groupID,
	)
}

func (s *SQLiteStore) listSettlements(ctx context.Context, query string, args ...any) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	if err := s.attachRelatedExpenses(ctx, settlements); err != nil {
		return nil, err
	}

	return settlements, nil
}

func scanSettlement(row interface{ Scan(...any) error }) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var amount string
	var note sql.NullString
	var groupID sql.NullString

	err := row.Scan(
		&settlement.ID,
		&amount,
		&note,
		&settlement.Date,
		&settlement.PaidByUserID,
		&settlement.ReceivedByUserID,
		&groupID,
		&settlement.CreatedBy,
		&settlement.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	settlement.Amount, err = scanAmount(amount)
	if err != nil {
		return nil, err
	}
	if note.Valid {
		settlement.Note = note.String
	}
	if groupID.Valid {
		settlement.GroupID = groupID.String
	}

	return settlement, nil
}

func (s *SQLiteStore) attachRelatedExpenses(ctx context.Context, settlements []*models.Settlement) error {
	for _, settlement := range settlements {
		rows, err := s.db.QueryContext(ctx,
			"SELECT expense_id FROM settlement_expenses WHERE settlement_id = ?",
			settlement.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get settlement expense references: %w", err)
		}

		for rows.Next() {
			var expenseID string
			if err := rows.Scan(&expenseID); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan settlement expense reference: %w", err)
			}
			settlement.RelatedExpenseIDs = append(settlement.RelatedExpenseIDs, expenseID)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed to iterate settlement expense references: %w", err)
		}
		rows.Close()
	}

	return nil
}
