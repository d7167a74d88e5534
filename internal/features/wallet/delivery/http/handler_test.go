package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"illara-backend/internal/common/errors"
	usermodels "illara-backend/internal/features/user/models"
	"illara-backend/internal/features/wallet/models"
	"illara-backend/internal/platform/postgres"
)

// stubWalletService возвращает заготовленные ответы кошелькового сервиса
type stubWalletService struct {
	snapshot *models.WalletResponse
	balance  int64
	err      error
}

func (s *stubWalletService) GetSnapshot(ctx context.Context, userID int64) (*models.WalletResponse, error) {
	return s.snapshot, s.err
}

func (s *stubWalletService) Earn(ctx context.Context, userID, amount int64, reason string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.balance += amount
	return s.balance, nil
}

func (s *stubWalletService) Spend(ctx context.Context, userID, amount int64, item string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.balance -= amount
	return s.balance, nil
}

func (s *stubWalletService) SpendInTx(ctx context.Context, tx postgres.Tx, userID, amount int64, item string) (int64, error) {
	return s.Spend(ctx, userID, amount, item)
}

func (s *stubWalletService) RecentLedger(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error) {
	if s.snapshot == nil {
		return nil, s.err
	}
	return s.snapshot.LastTx, s.err
}

func (s *stubWalletService) InvalidateSnapshot(ctx context.Context, userID int64) {}

type stubResolver struct {
	user *usermodels.User
	err  error
}

func (s *stubResolver) GetUser(ctx context.Context, tgID string) (*usermodels.User, error) {
	return s.user, s.err
}

func setupWalletRouter(t *testing.T, svc *stubWalletService, resolver *stubResolver, authenticated bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	if authenticated {
		router.Use(func(c *gin.Context) {
			c.Set("telegram_user", initdata.User{ID: 123456789})
		})
	}

	handler := NewWalletHandler(svc, resolver)
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestGetWallet(t *testing.T) {
	svc := &stubWalletService{
		snapshot: &models.WalletResponse{
			Balance: 150,
			LastTx:  []models.LedgerEntry{{ID: 1, Amount: 150, Type: models.EntryTypeEarn}},
		},
	}
	resolver := &stubResolver{user: &usermodels.User{ID: 7, TgID: "123456789"}}
	router := setupWalletRouter(t, svc, resolver, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.WalletResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(150), resp.Balance)
	require.Len(t, resp.LastTx, 1)
}

func TestGetWalletUnauthenticated(t *testing.T) {
	router := setupWalletRouter(t, &stubWalletService{}, &stubResolver{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetWalletUnknownAccount(t *testing.T) {
	resolver := &stubResolver{err: errors.NewUserNotFoundError("123456789")}
	router := setupWalletRouter(t, &stubWalletService{}, resolver, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEarn(t *testing.T) {
	svc := &stubWalletService{balance: 100}
	resolver := &stubResolver{user: &usermodels.User{ID: 7}}
	router := setupWalletRouter(t, svc, resolver, true)

	body, _ := json.Marshal(models.EarnRequest{Amount: 50, Reason: "flappy session"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/earn", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(150), resp.Balance)
}

func TestEarnMissingAmount(t *testing.T) {
	resolver := &stubResolver{user: &usermodels.User{ID: 7}}
	router := setupWalletRouter(t, &stubWalletService{}, resolver, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/earn", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpendInvalidAmount(t *testing.T) {
	svc := &stubWalletService{err: errors.NewInvalidAmountError(-5)}
	resolver := &stubResolver{user: &usermodels.User{ID: 7}}
	router := setupWalletRouter(t, svc, resolver, true)

	body, _ := json.Marshal(models.SpendRequest{Amount: -5, Item: "sword"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/spend", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSpendInsufficientBalance(t *testing.T) {
	svc := &stubWalletService{err: errors.NewInsufficientBalanceError(50, 80)}
	resolver := &stubResolver{user: &usermodels.User{ID: 7}}
	router := setupWalletRouter(t, svc, resolver, true)

	body, _ := json.Marshal(models.SpendRequest{Amount: 80, Item: "sword"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/spend", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}
