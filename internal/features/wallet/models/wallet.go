package models

import "time"

// Категории записей леджера. Каждая запись объясняет ровно одно
// изменение баланса и после записи не изменяется.
const (
	EntryTypeEarn  = "earn"
	EntryTypeSpend = "spend"
)

// LedgerEntry представляет одну запись леджера кошелька
// @Description Неизменяемая запись об изменении баланса
type LedgerEntry struct {
	ID        int64     `json:"id" db:"id" example:"42"`
	UserID    int64     `json:"-" db:"user_id"`
	Amount    int64     `json:"amount" db:"amount" example:"50"`
	Type      string    `json:"type" db:"type" enums:"earn,spend" example:"earn"`
	Meta      string    `json:"meta" db:"meta" example:"daily bonus"`
	CreatedAt time.Time `json:"ts" db:"created_at" example:"2024-03-15T14:30:00Z"`
}

// WalletResponse представляет снимок кошелька: баланс и последние операции
type WalletResponse struct {
	Balance int64         `json:"balance" example:"150"`
	LastTx  []LedgerEntry `json:"lastTx"`
}

// EarnRequest представляет запрос на начисление ILL
type EarnRequest struct {
	Amount int64  `json:"amount" binding:"required" example:"50"`
	Reason string `json:"reason" example:"flappy session"`
}

// SpendRequest представляет запрос на списание ILL
type SpendRequest struct {
	Amount int64  `json:"amount" binding:"required" example:"200"`
	Item   string `json:"item" example:"Sword"`
}

// BalanceResponse представляет новый баланс после операции
type BalanceResponse struct {
	Balance int64 `json:"balance" example:"100"`
}
