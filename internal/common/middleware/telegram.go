package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"illara-backend/internal/common/logger"
)

const telegramUserKey = "telegram_user"

// TelegramInitData проверяет подпись init_data Telegram Mini App
// и кладет пользователя Telegram в контекст запроса.
func TelegramInitData(botToken string, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		initDataQuery := c.GetHeader("init_data")
		if initDataQuery == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
			return
		}

		// Disable expiration check
		expIn := time.Duration(0)

		if err := initdata.Validate(initDataQuery, botToken, expIn); err != nil {
			if debug {
				logger.Debug().Err(err).Msg("Init data validation failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid init data"})
			return
		}

		parsedData, err := initdata.Parse(initDataQuery)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to parse init data"})
			return
		}

		c.Set(telegramUserKey, parsedData.User)
		c.Next()
	}
}

// TelegramUser возвращает пользователя Telegram из контекста запроса
func TelegramUser(c *gin.Context) (initdata.User, bool) {
	value, exists := c.Get(telegramUserKey)
	if !exists {
		return initdata.User{}, false
	}
	user, ok := value.(initdata.User)
	return user, ok
}
