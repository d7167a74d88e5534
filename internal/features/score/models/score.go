package models

import "time"

// ScoreRecord представляет один результат игровой сессии
// @Description Запись результата мини-игры
type ScoreRecord struct {
	ID        int64     `json:"id" db:"id" example:"12"`
	UserID    int64     `json:"-" db:"user_id"`
	GameID    string    `json:"game_id" db:"game_id" example:"flappy"`
	Score     int64     `json:"score" db:"score" example:"17"`
	CreatedAt time.Time `json:"ts" db:"created_at" example:"2024-03-15T14:30:00Z"`
}

// BestScore представляет лучший результат пользователя в одной игре
type BestScore struct {
	GameID string `json:"game_id" db:"game_id" example:"tower"`
	Score  int64  `json:"score" db:"score" example:"42"`
}

// RecordScoreRequest представляет запрос на сохранение результата
type RecordScoreRequest struct {
	GameID string `json:"game_id" binding:"required" example:"flappy"`
	Score  *int64 `json:"score" binding:"required" example:"17"`
}

// RecordScoreResponse подтверждает сохранение результата
type RecordScoreResponse struct {
	Score *ScoreRecord `json:"score"`
}
