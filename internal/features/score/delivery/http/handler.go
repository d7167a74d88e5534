package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"illara-backend/internal/common/errors"
	"illara-backend/internal/common/middleware"
	"illara-backend/internal/features/score/models"
	"illara-backend/internal/features/score/service"
	usermodels "illara-backend/internal/features/user/models"
)

// UserResolver переводит Telegram ID в аккаунт
type UserResolver interface {
	GetUser(ctx context.Context, tgID string) (*usermodels.User, error)
}

type ScoreHandler struct {
	service service.ScoreService
	users   UserResolver
}

func NewScoreHandler(service service.ScoreService, users UserResolver) *ScoreHandler {
	return &ScoreHandler{
		service: service,
		users:   users,
	}
}

func (h *ScoreHandler) RegisterRoutes(router *gin.RouterGroup) {
	scores := router.Group("/scores")
	{
		scores.POST("", h.recordScore)
		scores.GET("/best", h.bestScores)
	}
}

func (h *ScoreHandler) resolveUser(c *gin.Context) (*usermodels.User, bool) {
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

// @Summary Record a game score
// @Description Appends a score record for the authenticated user. Scores never affect the wallet.
// @Tags scores
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param body body models.RecordScoreRequest true "Game and score"
// @Success 200 {object} models.RecordScoreResponse "Stored record"
// @Failure 400 {object} middleware.ErrorResponse "Invalid payload"
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /scores [post]
func (h *ScoreHandler) recordScore(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	var input models.RecordScoreRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("body", err.Error()))
		return
	}

	record, err := h.service.RecordScore(c.Request.Context(), user.ID, input.GameID, *input.Score)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RecordScoreResponse{Score: record})
}

// @Summary Best scores
// @Description Returns the best score of the authenticated user for each game.
// @Tags scores
// @Produce json
// @Security TelegramInitData
// @Success 200 {array} models.BestScore "Best scores per game"
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /scores/best [get]
func (h *ScoreHandler) bestScores(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	best, err := h.service.BestScores(c.Request.Context(), user.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, best)
}
