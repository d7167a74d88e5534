package service

import (
	"context"
	stderrors "errors"

	"illara-backend/internal/common/errors"
	"illara-backend/internal/features/user/models"
	"illara-backend/internal/features/user/repository"
	userpg "illara-backend/internal/features/user/repository/postgres"
	"illara-backend/internal/platform/postgres"
)

type UserService interface {
	// GetOrCreateUser создает аккаунт по Telegram ID либо обновляет
	// имя и аватар; кошелек создается вместе с аккаунтом
	GetOrCreateUser(ctx context.Context, tgID, name, avatar string) (*models.User, error)
	// GetUser возвращает аккаунт по Telegram ID
	GetUser(ctx context.Context, tgID string) (*models.User, error)
}

// WalletCreator создает запись кошелька в той же транзакции,
// что и запись пользователя: аккаунт без кошелька существовать не должен
type WalletCreator interface {
	EnsureWallet(ctx context.Context, tx postgres.Tx, userID int64) error
}

type userService struct {
	repo    repository.UserRepository
	wallets WalletCreator
	tx      postgres.TxRunner
}

func NewUserService(repo repository.UserRepository, wallets WalletCreator, tx postgres.TxRunner) UserService {
	return &userService{
		repo:    repo,
		wallets: wallets,
		tx:      tx,
	}
}

func (s *userService) GetOrCreateUser(ctx context.Context, tgID, name, avatar string) (*models.User, error) {
	if tgID == "" {
		return nil, errors.NewValidationError("tg_id", "must not be empty")
	}

	user := &models.User{
		TgID:   tgID,
		Name:   name,
		Avatar: avatar,
	}

	err := s.tx.WithTx(ctx, func(tx postgres.Tx) error {
		if err := s.repo.Upsert(ctx, tx, user); err != nil {
			return err
		}
		return s.wallets.EnsureWallet(ctx, tx, user.ID)
	})
	if err != nil {
		return nil, errors.NewDatabaseError("upsert user", err)
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, tgID string) (*models.User, error) {
	user, err := s.repo.GetByTgID(ctx, tgID)
	if err != nil {
		if stderrors.Is(err, userpg.ErrUserNotFound) {
			return nil, errors.NewUserNotFoundError(tgID)
		}
		return nil, errors.NewDatabaseError("get user", err)
	}

	return user, nil
}
