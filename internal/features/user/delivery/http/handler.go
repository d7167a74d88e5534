package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"illara-backend/internal/common/middleware"
	"illara-backend/internal/features/user/models"
	"illara-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/telegram", h.authTelegram)
	router.GET("/users/me", h.getMe)
}

// @Summary Authenticate via Telegram
// @Description Creates the account for the authenticated Telegram user on first call, together with an empty wallet. Subsequent calls update name and avatar.
// @Tags auth
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param body body models.AuthRequest false "Optional display fields"
// @Success 200 {object} models.AuthResponse "Account"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid init data"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /auth/telegram [post]
func (h *UserHandler) authTelegram(c *gin.Context) {
	tgUser, ok := middleware.TelegramUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	var input models.AuthRequest
	// Тело необязательно: имя и аватар можно взять из init data
	_ = c.ShouldBindJSON(&input)

	name := input.Name
	if name == "" {
		name = tgUser.FirstName
	}
	avatar := input.Avatar
	if avatar == "" {
		avatar = tgUser.PhotoURL
	}

	user, err := h.service.GetOrCreateUser(c.Request.Context(), strconv.FormatInt(tgUser.ID, 10), name, avatar)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{User: user})
}

// @Summary Get current user
// @Description Returns the account of the authenticated Telegram user.
// @Tags users
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} models.User "Account"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid init data"
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /users/me [get]
func (h *UserHandler) getMe(c *gin.Context) {
	tgUser, ok := middleware.TelegramUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), strconv.FormatInt(tgUser.ID, 10))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
