package repository

import (
	"context"

	"illara-backend/internal/features/score/models"
)

// ScoreRepository описывает доступ к таблице scores
type ScoreRepository interface {
	// Insert добавляет результат; заполняет ID и таймстемп
	Insert(ctx context.Context, record *models.ScoreRecord) error
	// BestByUser возвращает лучший результат пользователя по каждой игре
	BestByUser(ctx context.Context, userID int64) ([]models.BestScore, error)
}
