package service

import (
	"context"
	"fmt"
	"time"

	"illara-backend/internal/common/errors"
	"illara-backend/internal/common/logger"
	"illara-backend/internal/features/wallet/models"
	"illara-backend/internal/features/wallet/repository"
	"illara-backend/internal/platform/postgres"
)

// Снимок кошелька отдает не больше 20 последних записей леджера
const snapshotLedgerLimit = 20

type WalletService interface {
	// GetSnapshot возвращает баланс и последние записи леджера
	GetSnapshot(ctx context.Context, userID int64) (*models.WalletResponse, error)
	// Earn атомарно увеличивает баланс и пишет запись леджера "earn"
	Earn(ctx context.Context, userID, amount int64, reason string) (int64, error)
	// Spend атомарно уменьшает баланс и пишет запись леджера "spend";
	// при нехватке средств ни баланс, ни леджер не меняются
	Spend(ctx context.Context, userID, amount int64, item string) (int64, error)
	// SpendInTx выполняет списание внутри уже открытой транзакции;
	// единственная точка входа для компоновки с другими операциями
	SpendInTx(ctx context.Context, tx postgres.Tx, userID, amount int64, item string) (int64, error)
	// RecentLedger возвращает последние записи леджера, новые первыми
	RecentLedger(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error)
	// InvalidateSnapshot сбрасывает кэшированный снимок кошелька
	InvalidateSnapshot(ctx context.Context, userID int64)
}

// SnapshotCache кэширует снимки кошелька; ошибки кэша не влияют на запросы
type SnapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type walletService struct {
	repo     repository.WalletRepository
	tx       postgres.TxRunner
	cache    SnapshotCache
	cacheTTL time.Duration
}

func NewWalletService(repo repository.WalletRepository, tx postgres.TxRunner, cache SnapshotCache, cacheTTL time.Duration) WalletService {
	return &walletService{
		repo:     repo,
		tx:       tx,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func snapshotKey(userID int64) string {
	return fmt.Sprintf("wallet:snapshot:%d", userID)
}

func (s *walletService) GetSnapshot(ctx context.Context, userID int64) (*models.WalletResponse, error) {
	if s.cache != nil {
		var cached models.WalletResponse
		if err := s.cache.Get(ctx, snapshotKey(userID), &cached); err == nil {
			return &cached, nil
		}
	}

	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("get balance", err)
	}

	entries, err := s.repo.RecentEntries(ctx, userID, snapshotLedgerLimit)
	if err != nil {
		return nil, errors.NewDatabaseError("list ledger entries", err)
	}

	snapshot := &models.WalletResponse{
		Balance: balance,
		LastTx:  entries,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snapshotKey(userID), snapshot, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to cache wallet snapshot")
		}
	}

	return snapshot, nil
}

func (s *walletService) Earn(ctx context.Context, userID, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, errors.NewInvalidAmountError(amount)
	}

	var newBalance int64
	err := s.tx.WithTx(ctx, func(tx postgres.Tx) error {
		balance, err := s.repo.GetBalanceForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		newBalance = balance + amount
		if err := s.repo.UpdateBalance(ctx, tx, userID, newBalance); err != nil {
			return err
		}

		return s.repo.InsertLedgerEntry(ctx, tx, &models.LedgerEntry{
			UserID: userID,
			Amount: amount,
			Type:   models.EntryTypeEarn,
			Meta:   reason,
		})
	})
	if err != nil {
		return 0, errors.NewDatabaseError("earn", err)
	}

	s.InvalidateSnapshot(ctx, userID)
	return newBalance, nil
}

func (s *walletService) Spend(ctx context.Context, userID, amount int64, item string) (int64, error) {
	var newBalance int64
	err := s.tx.WithTx(ctx, func(tx postgres.Tx) error {
		balance, err := s.SpendInTx(ctx, tx, userID, amount, item)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		if _, ok := errors.AsAppError(err); ok {
			return 0, err
		}
		return 0, errors.NewDatabaseError("spend", err)
	}

	s.InvalidateSnapshot(ctx, userID)
	return newBalance, nil
}

func (s *walletService) SpendInTx(ctx context.Context, tx postgres.Tx, userID, amount int64, item string) (int64, error) {
	if amount <= 0 {
		return 0, errors.NewInvalidAmountError(amount)
	}

	balance, err := s.repo.GetBalanceForUpdate(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	// Проверка и списание выполняются под блокировкой строки кошелька:
	// два конкурентных списания не могут оба пройти проверку
	if balance < amount {
		return 0, errors.NewInsufficientBalanceError(balance, amount)
	}

	newBalance := balance - amount
	if err := s.repo.UpdateBalance(ctx, tx, userID, newBalance); err != nil {
		return 0, err
	}

	if err := s.repo.InsertLedgerEntry(ctx, tx, &models.LedgerEntry{
		UserID: userID,
		Amount: -amount,
		Type:   models.EntryTypeSpend,
		Meta:   item,
	}); err != nil {
		return 0, err
	}

	return newBalance, nil
}

func (s *walletService) RecentLedger(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 || limit > snapshotLedgerLimit {
		limit = snapshotLedgerLimit
	}

	entries, err := s.repo.RecentEntries(ctx, userID, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("list ledger entries", err)
	}

	return entries, nil
}

func (s *walletService) InvalidateSnapshot(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, snapshotKey(userID)); err != nil {
		logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to invalidate wallet snapshot")
	}
}
