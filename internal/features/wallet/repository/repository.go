package repository

import (
	"context"

	"illara-backend/internal/features/wallet/models"
	"illara-backend/internal/platform/postgres"
)

// WalletRepository описывает доступ к кошелькам и леджеру.
// Баланс меняется только внутри транзакции: строка кошелька
// блокируется через GetBalanceForUpdate, затем UpdateBalance и
// InsertLedgerEntry фиксируются вместе.
type WalletRepository interface {
	// EnsureWallet создает строку кошелька с нулевым балансом, если её нет
	EnsureWallet(ctx context.Context, tx postgres.Tx, userID int64) error
	// GetBalance возвращает текущий баланс; отсутствие кошелька читается как 0
	GetBalance(ctx context.Context, userID int64) (int64, error)
	// GetBalanceForUpdate читает баланс под блокировкой строки (FOR UPDATE)
	GetBalanceForUpdate(ctx context.Context, tx postgres.Tx, userID int64) (int64, error)
	// UpdateBalance записывает новый баланс кошелька
	UpdateBalance(ctx context.Context, tx postgres.Tx, userID, balance int64) error
	// InsertLedgerEntry добавляет запись леджера; заполняет ID и таймстемп
	InsertLedgerEntry(ctx context.Context, tx postgres.Tx, entry *models.LedgerEntry) error
	// RecentEntries возвращает последние записи леджера, новые первыми
	RecentEntries(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error)
}
