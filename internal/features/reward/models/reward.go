package models

import "time"

// Статусы награды. Переход active -> redeemed зарезервирован:
// сейчас ни один эндпоинт не гасит коды.
const (
	StatusActive   = "active"
	StatusRedeemed = "redeemed"
)

// Reward представляет одноразовый код, выданный в обмен на списание ILL
// @Description Награда с уникальным кодом погашения
type Reward struct {
	ID        int64     `json:"id" db:"id" example:"7"`
	UserID    int64     `json:"-" db:"user_id"`
	Type      string    `json:"type" db:"type" enums:"sword,coupon5,coupon10" example:"coupon5"`
	Code      string    `json:"code" db:"code" example:"7b0f1a9e-3f1d-4e9a-9c75-2f6de1a8c341"`
	Status    string    `json:"status" db:"status" enums:"active,redeemed" example:"active"`
	CreatedAt time.Time `json:"ts" db:"created_at" example:"2024-03-15T14:30:00Z"`
}

// StoreItem представляет позицию магазина
type StoreItem struct {
	ID          string `json:"id" example:"coupon5"`
	Name        string `json:"name" example:"5% Coupon"`
	Price       int64  `json:"price" example:"400"`
	Type        string `json:"type" example:"coupon5"`
	Description string `json:"description" example:"5% discount coupon"`
}

// Каталог магазина: цены в ILL
var storeItems = []StoreItem{
	{
		ID:          "sword",
		Name:        "Sword",
		Price:       200,
		Type:        "sword",
		Description: "A powerful sword that grants special abilities",
	},
	{
		ID:          "coupon5",
		Name:        "5% Coupon",
		Price:       400,
		Type:        "coupon5",
		Description: "5% discount coupon",
	},
	{
		ID:          "coupon10",
		Name:        "10% Coupon",
		Price:       700,
		Type:        "coupon10",
		Description: "10% discount coupon",
	},
}

// Catalog возвращает позиции магазина
func Catalog() []StoreItem {
	items := make([]StoreItem, len(storeItems))
	copy(items, storeItems)
	return items
}

// PriceFor возвращает цену награды по её типу
func PriceFor(rewardType string) (int64, bool) {
	for _, item := range storeItems {
		if item.Type == rewardType {
			return item.Price, true
		}
	}
	return 0, false
}

// RedeemRequest представляет запрос на покупку награды
type RedeemRequest struct {
	Type string `json:"type" binding:"required" enums:"sword,coupon5,coupon10" example:"coupon5"`
}

// RedeemResponse представляет выданный код награды
type RedeemResponse struct {
	Code string `json:"code" example:"7b0f1a9e-3f1d-4e9a-9c75-2f6de1a8c341"`
}
