package postgres

import (
	"context"
	"fmt"

	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports"
)

var _ ports.TransferJournal = (*TransferJournal)(nil)

// TransferJournal implements ports.TransferJournal on the transfers table.
type TransferJournal struct {
	pool Pool
}

// NewTransferJournal creates a new TransferJournal.
func NewTransferJournal(pool Pool) *TransferJournal {
	return &TransferJournal{pool: pool}
}

// Record inserts a completed transfer.
func (j *TransferJournal) Record(ctx context.Context, t *domain.Transfer) error {
	query := `INSERT INTO transfers (id, account_from_id, account_to_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := j.pool.Exec(ctx, query, t.ID, t.FromAccountID, t.ToAccountID, t.Amount, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// ListByAccount returns up to limit transfers debiting or crediting accountID,
// newest first. A limit of zero or less returns all of them.
func (j *TransferJournal) ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transfer, error) {
	query := `SELECT id, account_from_id, account_to_id, amount, created_at
		FROM transfers
		WHERE account_from_id = $1 OR account_to_id = $1
		ORDER BY created_at DESC`
	args := []any{accountID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := j.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		var t domain.Transfer
		if err := rows.Scan(&t.ID, &t.FromAccountID, &t.ToAccountID, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer rows: %w", err)
	}
	return transfers, nil
}
