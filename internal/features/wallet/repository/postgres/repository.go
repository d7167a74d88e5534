package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"illara-backend/internal/features/wallet/models"
	"illara-backend/internal/features/wallet/repository"
	platform "illara-backend/internal/platform/postgres"
)

type postgresRepository struct {
	db platform.DB
}

func NewPostgresRepository(db platform.DB) repository.WalletRepository {
	return &postgresRepository{db: db}
}

// EnsureWallet создает кошелек с нулевым балансом, если его ещё нет
func (r *postgresRepository) EnsureWallet(ctx context.Context, tx platform.Tx, userID int64) error {
	query := `
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := tx.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to ensure wallet: %w", err)
	}

	return nil
}

// GetBalance читает баланс без блокировки
func (r *postgresRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, `
		SELECT balance FROM wallets WHERE user_id = $1
	`, userID)
	if err != nil {
		// Отсутствующий кошелек читается как нулевой баланс
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

// GetBalanceForUpdate блокирует строку кошелька до конца транзакции.
// Конкурентные списания сериализуются именно на этой блокировке.
func (r *postgresRepository) GetBalanceForUpdate(ctx context.Context, tx platform.Tx, userID int64) (int64, error) {
	var balance int64
	err := tx.GetContext(ctx, &balance, `
		SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to lock wallet: %w", err)
	}

	return balance, nil
}

// UpdateBalance записывает новый баланс; создает кошелек, если его не было
func (r *postgresRepository) UpdateBalance(ctx context.Context, tx platform.Tx, userID, balance int64) error {
	query := `
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET balance = EXCLUDED.balance
	`

	if _, err := tx.ExecContext(ctx, query, userID, balance); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	return nil
}

// InsertLedgerEntry добавляет запись леджера
func (r *postgresRepository) InsertLedgerEntry(ctx context.Context, tx platform.Tx, entry *models.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (user_id, amount, type, meta)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	row := struct {
		ID        int64        `db:"id"`
		CreatedAt sql.NullTime `db:"created_at"`
	}{}
	if err := tx.GetContext(ctx, &row, query, entry.UserID, entry.Amount, entry.Type, entry.Meta); err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	entry.ID = row.ID
	if row.CreatedAt.Valid {
		entry.CreatedAt = row.CreatedAt.Time
	}

	return nil
}

// RecentEntries возвращает последние записи леджера, новые первыми
func (r *postgresRepository) RecentEntries(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error) {
	query := `
		SELECT id, user_id, amount, type, meta, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	entries := []models.LedgerEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return entries, nil
}
