package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"illara-backend/internal/common/errors"
	"illara-backend/internal/common/middleware"
	usermodels "illara-backend/internal/features/user/models"
	"illara-backend/internal/features/wallet/models"
	"illara-backend/internal/features/wallet/service"
)

// UserResolver переводит Telegram ID в аккаунт; разрешение личности —
// обязанность границы API, сервис кошелька работает только с userID
type UserResolver interface {
	GetUser(ctx context.Context, tgID string) (*usermodels.User, error)
}

type WalletHandler struct {
	service service.WalletService
	users   UserResolver
}

func NewWalletHandler(service service.WalletService, users UserResolver) *WalletHandler {
	return &WalletHandler{
		service: service,
		users:   users,
	}
}

func (h *WalletHandler) RegisterRoutes(router *gin.RouterGroup) {
	wallet := router.Group("/wallet")
	{
		wallet.GET("", h.getWallet)
		wallet.POST("/earn", h.earn)
		wallet.POST("/spend", h.spend)
	}
}

// resolveUser возвращает аккаунт текущего пользователя Telegram
func (h *WalletHandler) resolveUser(c *gin.Context) (*usermodels.User, bool) {
	tgUser, ok := middleware.TelegramUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return nil, false
	}

	user, err := h.users.GetUser(c.Request.Context(), strconv.FormatInt(tgUser.ID, 10))
	if err != nil {
		middleware.AbortWithError(c, err)
		return nil, false
	}

	return user, true
}

// @Summary Get wallet snapshot
// @Description Returns the current ILL balance and up to 20 most recent ledger entries, most recent first.
// @Tags wallet
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} models.WalletResponse "Balance and recent ledger"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid init data"
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /wallet [get]
func (h *WalletHandler) getWallet(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	snapshot, err := h.service.GetSnapshot(c.Request.Context(), user.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// @Summary Earn ILL
// @Description Atomically credits the wallet and appends an "earn" ledger entry.
// @Tags wallet
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param body body models.EarnRequest true "Amount and reason"
// @Success 200 {object} models.BalanceResponse "New balance"
// @Failure 400 {object} middleware.ErrorResponse "Non-positive amount"
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /wallet/earn [post]
func (h *WalletHandler) earn(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	var input models.EarnRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("body", err.Error()))
		return
	}

	balance, err := h.service.Earn(c.Request.Context(), user.ID, input.Amount, input.Reason)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BalanceResponse{Balance: balance})
}

// @Summary Spend ILL
// @Description Atomically debits the wallet and appends a "spend" ledger entry. Fails without side effects when the balance is insufficient.
// @Tags wallet
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param body body models.SpendRequest true "Amount and item"
// @Success 200 {object} models.BalanceResponse "New balance"
// @Failure 400 {object} middleware.ErrorResponse "Non-positive amount"
// @Failure 402 {object} middleware.ErrorResponse "Insufficient balance"
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /wallet/spend [post]
func (h *WalletHandler) spend(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	var input models.SpendRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("body", err.Error()))
		return
	}

	balance, err := h.service.Spend(c.Request.Context(), user.ID, input.Amount, input.Item)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BalanceResponse{Balance: balance})
}
