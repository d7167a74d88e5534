package service

import (
	"context"

	"illara-backend/internal/common/errors"
	"illara-backend/internal/features/score/models"
	"illara-backend/internal/features/score/repository"
)

type ScoreService interface {
	// RecordScore сохраняет результат игровой сессии; чистое добавление,
	// на кошелек не влияет
	RecordScore(ctx context.Context, userID int64, gameID string, score int64) (*models.ScoreRecord, error)
	// BestScores возвращает лучший результат пользователя по каждой игре
	BestScores(ctx context.Context, userID int64) ([]models.BestScore, error)
}

type scoreService struct {
	repo repository.ScoreRepository
}

func NewScoreService(repo repository.ScoreRepository) ScoreService {
	return &scoreService{
		repo: repo,
	}
}

func (s *scoreService) RecordScore(ctx context.Context, userID int64, gameID string, score int64) (*models.ScoreRecord, error) {
	if gameID == "" {
		return nil, errors.NewValidationError("game_id", "must not be empty")
	}
	if score < 0 {
		return nil, errors.NewValidationError("score", "must not be negative")
	}

	record := &models.ScoreRecord{
		UserID: userID,
		GameID: gameID,
		Score:  score,
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, errors.NewDatabaseError("insert score", err)
	}

	return record, nil
}

func (s *scoreService) BestScores(ctx context.Context, userID int64) ([]models.BestScore, error) {
	best, err := s.repo.BestByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list best scores", err)
	}
	return best, nil
}
