package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"illara-backend/internal/features/score/models"
	"illara-backend/internal/features/score/repository"
	platform "illara-backend/internal/platform/postgres"
)

type postgresRepository struct {
	db platform.DB
}

func NewPostgresRepository(db platform.DB) repository.ScoreRepository {
	return &postgresRepository{db: db}
}

// Insert добавляет результат игровой сессии
func (r *postgresRepository) Insert(ctx context.Context, record *models.ScoreRecord) error {
	query := `
		INSERT INTO scores (user_id, game_id, score)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	row := struct {
		ID        int64        `db:"id"`
		CreatedAt sql.NullTime `db:"created_at"`
	}{}
	if err := r.db.GetContext(ctx, &row, query, record.UserID, record.GameID, record.Score); err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}

	record.ID = row.ID
	if row.CreatedAt.Valid {
		record.CreatedAt = row.CreatedAt.Time
	}

	return nil
}

// BestByUser возвращает лучший результат по каждой игре
func (r *postgresRepository) BestByUser(ctx context.Context, userID int64) ([]models.BestScore, error) {
	query := `
		SELECT game_id, MAX(score) AS score
		FROM scores
		WHERE user_id = $1
		GROUP BY game_id
		ORDER BY game_id
	`

	best := []models.BestScore{}
	if err := r.db.SelectContext(ctx, &best, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list best scores: %w", err)
	}

	return best, nil
}
