package service

import (
	"context"

	"github.com/google/uuid"

	"illara-backend/internal/common/errors"
	"illara-backend/internal/common/logger"
	"illara-backend/internal/features/reward/models"
	"illara-backend/internal/features/reward/repository"
	"illara-backend/internal/platform/postgres"
)

// Коллизия uuid-кода астрономически маловероятна; одной перегенерации
// достаточно, дальше ошибка отдается наружу
const maxCodeAttempts = 2

type RewardService interface {
	// Redeem списывает цену награды и выпускает уникальный код;
	// списание и выпуск фиксируются одной транзакцией
	Redeem(ctx context.Context, userID int64, rewardType string) (*models.Reward, error)
	// ListRewards возвращает награды пользователя, новые первыми
	ListRewards(ctx context.Context, userID int64) ([]models.Reward, error)
	// Catalog возвращает позиции магазина
	Catalog() []models.StoreItem
}

// WalletSpender выполняет списание внутри переданной транзакции —
// баланс меняется только через кошельковый сервис
type WalletSpender interface {
	SpendInTx(ctx context.Context, tx postgres.Tx, userID, amount int64, item string) (int64, error)
	InvalidateSnapshot(ctx context.Context, userID int64)
}

// CodeGenerator выдает код награды; в тестах подменяется для
// проверки обработки коллизий
type CodeGenerator func() string

type rewardService struct {
	repo    repository.RewardRepository
	wallet  WalletSpender
	tx      postgres.TxRunner
	newCode CodeGenerator
}

func NewRewardService(repo repository.RewardRepository, wallet WalletSpender, tx postgres.TxRunner) RewardService {
	return &rewardService{
		repo:    repo,
		wallet:  wallet,
		tx:      tx,
		newCode: uuid.NewString,
	}
}

// NewRewardServiceWithGenerator используется в тестах для подмены генератора кодов
func NewRewardServiceWithGenerator(repo repository.RewardRepository, wallet WalletSpender, tx postgres.TxRunner, gen CodeGenerator) RewardService {
	return &rewardService{
		repo:    repo,
		wallet:  wallet,
		tx:      tx,
		newCode: gen,
	}
}

func (s *rewardService) Redeem(ctx context.Context, userID int64, rewardType string) (*models.Reward, error) {
	price, ok := models.PriceFor(rewardType)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownRewardType, "Unknown reward type").
			WithDetail("reward_type", rewardType)
	}

	var reward *models.Reward
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		candidate := &models.Reward{
			UserID: userID,
			Type:   rewardType,
			Code:   s.newCode(),
			Status: models.StatusActive,
		}

		// Списание и выпуск награды — одна транзакция: откат любого
		// шага откатывает оба, списание без награды недостижимо
		err := s.tx.WithTx(ctx, func(tx postgres.Tx) error {
			if _, err := s.wallet.SpendInTx(ctx, tx, userID, price, rewardType); err != nil {
				return err
			}
			return s.repo.Insert(ctx, tx, candidate)
		})
		if err == nil {
			reward = candidate
			break
		}

		if appErr, ok := errors.AsAppError(err); ok {
			// InsufficientBalance и прочие клиентские ошибки не ретраятся
			return nil, appErr
		}

		if postgres.IsUniqueViolation(err) {
			logger.Warn().
				Int64("user_id", userID).
				Str("reward_type", rewardType).
				Int("attempt", attempt).
				Msg("Reward code collision, regenerating")
			if attempt == maxCodeAttempts {
				return nil, errors.NewCodeCollisionError(rewardType)
			}
			continue
		}

		return nil, errors.NewDatabaseError("redeem reward", err)
	}

	s.wallet.InvalidateSnapshot(ctx, userID)
	return reward, nil
}

func (s *rewardService) ListRewards(ctx context.Context, userID int64) ([]models.Reward, error) {
	rewards, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list rewards", err)
	}
	return rewards, nil
}

func (s *rewardService) Catalog() []models.StoreItem {
	return models.Catalog()
}
