package repository

import (
	"context"

	"illara-backend/internal/features/user/models"
	"illara-backend/internal/platform/postgres"
)

// UserRepository описывает доступ к таблице users
type UserRepository interface {
	// Upsert создает пользователя либо обновляет имя и аватар;
	// заполняет ID и таймстемпы из базы
	Upsert(ctx context.Context, tx postgres.Tx, user *models.User) error
	// GetByTgID возвращает пользователя по Telegram ID
	GetByTgID(ctx context.Context, tgID string) (*models.User, error)
}
