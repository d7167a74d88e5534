package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"illara-backend/internal/common/errors"
	"illara-backend/internal/common/middleware"
	"illara-backend/internal/features/reward/models"
	"illara-backend/internal/features/reward/service"
	usermodels "illara-backend/internal/features/user/models"
)

// UserResolver переводит Telegram ID в аккаунт
type UserResolver interface {
	GetUser(ctx context.Context, tgID string) (*usermodels.User, error)
}

type RewardHandler struct {
	service service.RewardService
	users   UserResolver
}

func NewRewardHandler(service service.RewardService, users UserResolver) *RewardHandler {
	return &RewardHandler{
		service: service,
		users:   users,
	}
}

func (h *RewardHandler) RegisterRoutes(router *gin.RouterGroup) {
	rewards := router.Group("/rewards")
	{
		rewards.GET("", h.listRewards)
		rewards.GET("/catalog", h.catalog)
		rewards.POST("/redeem", h.redeem)
	}
}

func (h *RewardHandler) resolveUser(c *gin.Context) (*usermodels.User, bool) {
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

// @Summary Redeem a reward
// @Description Debits the catalog price from the wallet and mints a single-use reward code in one transaction.
// @Tags rewards
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param body body models.RedeemRequest true "Reward type"
// @Success 200 {object} models.RedeemResponse "Issued code"
// @Failure 400 {object} middleware.ErrorResponse "Unknown reward type"
// @Failure 402 {object} middleware.ErrorResponse "Insufficient balance"
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Failure 409 {object} middleware.ErrorResponse "Code collision"
// @Router /rewards/redeem [post]
func (h *RewardHandler) redeem(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	var input models.RedeemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("body", err.Error()))
		return
	}

	reward, err := h.service.Redeem(c.Request.Context(), user.ID, input.Type)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RedeemResponse{Code: reward.Code})
}

// @Summary List rewards
// @Description Returns the rewards of the authenticated user, most recent first.
// @Tags rewards
// @Produce json
// @Security TelegramInitData
// @Success 200 {array} models.Reward "Rewards"
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /rewards [get]
func (h *RewardHandler) listRewards(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	rewards, err := h.service.ListRewards(c.Request.Context(), user.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rewards)
}

// @Summary Store catalog
// @Description Returns the store items purchasable with ILL.
// @Tags rewards
// @Produce json
// @Security TelegramInitData
// @Success 200 {array} models.StoreItem "Catalog"
// @Router /rewards/catalog [get]
func (h *RewardHandler) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Catalog())
}
