package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"illara-backend/internal/features/reward/models"
	"illara-backend/internal/features/reward/repository"
	platform "illara-backend/internal/platform/postgres"
)

type postgresRepository struct {
	db platform.DB
}

func NewPostgresRepository(db platform.DB) repository.RewardRepository {
	return &postgresRepository{db: db}
}

// Insert создает награду со статусом active
func (r *postgresRepository) Insert(ctx context.Context, tx platform.Tx, reward *models.Reward) error {
	query := `
		INSERT INTO rewards (user_id, type, code, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	row := struct {
		ID        int64        `db:"id"`
		CreatedAt sql.NullTime `db:"created_at"`
	}{}
	if err := tx.GetContext(ctx, &row, query, reward.UserID, reward.Type, reward.Code, reward.Status); err != nil {
		// Нарушение уникальности кода пробрасывается наверх как есть:
		// сервис решает, перегенерировать ли код
		return fmt.Errorf("failed to insert reward: %w", err)
	}

	reward.ID = row.ID
	if row.CreatedAt.Valid {
		reward.CreatedAt = row.CreatedAt.Time
	}

	return nil
}

// ListByUser возвращает награды пользователя, новые первыми
func (r *postgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Reward, error) {
	query := `
		SELECT id, user_id, type, code, status, created_at
		FROM rewards
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rewards := []models.Reward{}
	if err := r.db.SelectContext(ctx, &rewards, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	return rewards, nil
}
