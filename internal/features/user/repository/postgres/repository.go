package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"illara-backend/internal/features/user/models"
	"illara-backend/internal/features/user/repository"
	platform "illara-backend/internal/platform/postgres"
)

// ErrUserNotFound возвращается, когда пользователь отсутствует в базе
var ErrUserNotFound = errors.New("user not found")

type postgresRepository struct {
	db platform.DB
}

func NewPostgresRepository(db platform.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

// Upsert создает или обновляет пользователя по tg_id
func (r *postgresRepository) Upsert(ctx context.Context, tx platform.Tx, user *models.User) error {
	query := `
		INSERT INTO users (tg_id, name, avatar)
		VALUES ($1, $2, $3)
		ON CONFLICT (tg_id) DO UPDATE SET
			name = EXCLUDED.name,
			avatar = EXCLUDED.avatar,
			updated_at = NOW()
		RETURNING id, tg_id, name, avatar, created_at, updated_at
	`

	if err := tx.GetContext(ctx, user, query, user.TgID, user.Name, user.Avatar); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// GetByTgID получает пользователя по Telegram ID
func (r *postgresRepository) GetByTgID(ctx context.Context, tgID string) (*models.User, error) {
	query := `
		SELECT id, tg_id, name, avatar, created_at, updated_at
		FROM users
		WHERE tg_id = $1
	`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, tgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
