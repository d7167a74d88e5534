package models

import "time"

// User представляет аккаунт пользователя Illara Camp
// @Description Аккаунт пользователя, привязанный к Telegram ID
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	TgID      string    `json:"tg_id" db:"tg_id" example:"123456789"`
	Name      string    `json:"name" db:"name" example:"John"`
	Avatar    string    `json:"avatar" db:"avatar" example:"https://t.me/i/userpic/320/johndoe.jpg"`
	CreatedAt time.Time `json:"created_at" db:"created_at" example:"2024-03-15T14:30:00Z"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" example:"2024-03-15T14:30:00Z"`
}

// AuthRequest представляет тело запроса аутентификации
type AuthRequest struct {
	Name   string `json:"name" example:"John"`
	Avatar string `json:"avatar" example:"https://t.me/i/userpic/320/johndoe.jpg"`
}

// AuthResponse представляет ответ аутентификации
type AuthResponse struct {
	User *User `json:"user"`
}
