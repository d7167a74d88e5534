package repository

import (
	"context"

	"illara-backend/internal/features/reward/models"
	"illara-backend/internal/platform/postgres"
)

// RewardRepository описывает доступ к таблице rewards
type RewardRepository interface {
	// Insert создает награду; уникальный индекс по code — последняя
	// линия защиты от коллизий, нарушение возвращается как ошибка
	Insert(ctx context.Context, tx postgres.Tx, reward *models.Reward) error
	// ListByUser возвращает награды пользователя, новые первыми
	ListByUser(ctx context.Context, userID int64) ([]models.Reward, error)
}
