package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"illara-backend/internal/common/errors"
	"illara-backend/internal/features/reward/models"
	"illara-backend/internal/platform/postgres"
)

type stubTx struct{}

func (stubTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (stubTx) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return nil
}

// memRewardStore имитирует постгрес-репозиторий наград, включая
// уникальный индекс по коду
type memRewardStore struct {
	rewards []models.Reward
	nextID  int64

	insertErr error
}

func (m *memRewardStore) Insert(ctx context.Context, tx postgres.Tx, reward *models.Reward) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, r := range m.rewards {
		if r.Code == reward.Code {
			return &pq.Error{Code: "23505", Constraint: "rewards_code_key"}
		}
	}
	m.nextID++
	reward.ID = m.nextID
	m.rewards = append(m.rewards, *reward)
	return nil
}

func (m *memRewardStore) ListByUser(ctx context.Context, userID int64) ([]models.Reward, error) {
	var out []models.Reward
	for i := len(m.rewards) - 1; i >= 0; i-- {
		if m.rewards[i].UserID == userID {
			out = append(out, m.rewards[i])
		}
	}
	return out, nil
}

// stubSpender заменяет кошельковый сервис: списывает из локального баланса
type stubSpender struct {
	balance     int64
	invalidated int
}

func (s *stubSpender) SpendInTx(ctx context.Context, tx postgres.Tx, userID, amount int64, item string) (int64, error) {
	if amount <= 0 {
		return 0, errors.NewInvalidAmountError(amount)
	}
	if s.balance < amount {
		return 0, errors.NewInsufficientBalanceError(s.balance, amount)
	}
	s.balance -= amount
	return s.balance, nil
}

func (s *stubSpender) InvalidateSnapshot(ctx context.Context, userID int64) {
	s.invalidated++
}

// rewardTxRunner откатывает баланс заглушки при ошибке функции транзакции
type rewardTxRunner struct {
	spender *stubSpender
	store   *memRewardStore
}

func (r *rewardTxRunner) WithTx(ctx context.Context, fn func(tx postgres.Tx) error) error {
	balanceBefore := r.spender.balance
	rewardsBefore := len(r.store.rewards)
	if err := fn(stubTx{}); err != nil {
		r.spender.balance = balanceBefore
		r.store.rewards = r.store.rewards[:rewardsBefore]
		return err
	}
	return nil
}

func newTestRewardService(balance int64, gen CodeGenerator) (RewardService, *memRewardStore, *stubSpender) {
	store := &memRewardStore{}
	spender := &stubSpender{balance: balance}
	runner := &rewardTxRunner{spender: spender, store: store}
	if gen == nil {
		gen = uuid.NewString
	}
	return NewRewardServiceWithGenerator(store, spender, runner, gen), store, spender
}

func TestRedeemUnknownType(t *testing.T) {
	svc, store, spender := newTestRewardService(1000, nil)

	_, err := svc.Redeem(context.Background(), 1, "castle")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnknownRewardType, appErr.Code)
	assert.Equal(t, int64(1000), spender.balance)
	assert.Empty(t, store.rewards)
}

func TestRedeemChargesPriceAndMintsCode(t *testing.T) {
	svc, store, spender := newTestRewardService(400, nil)

	reward, err := svc.Redeem(context.Background(), 1, "coupon5")
	require.NoError(t, err)

	assert.Equal(t, "coupon5", reward.Type)
	assert.Equal(t, models.StatusActive, reward.Status)
	assert.NotEmpty(t, reward.Code)
	_, parseErr := uuid.Parse(reward.Code)
	assert.NoError(t, parseErr)

	assert.Zero(t, spender.balance)
	require.Len(t, store.rewards, 1)
	assert.Equal(t, 1, spender.invalidated)
}

func TestRedeemInsufficientBalance(t *testing.T) {
	svc, store, spender := newTestRewardService(100, nil)

	_, err := svc.Redeem(context.Background(), 1, "sword")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInsufficientBalance, appErr.Code)

	// Ни списания, ни награды
	assert.Equal(t, int64(100), spender.balance)
	assert.Empty(t, store.rewards)
}

func TestRedeemMintsDistinctCodes(t *testing.T) {
	const m = 10

	svc, store, spender := newTestRewardService(m*200, nil)

	codes := make(map[string]struct{}, m)
	for i := 0; i < m; i++ {
		reward, err := svc.Redeem(context.Background(), 1, "sword")
		require.NoError(t, err)
		codes[reward.Code] = struct{}{}
	}

	assert.Len(t, codes, m)
	assert.Len(t, store.rewards, m)
	assert.Zero(t, spender.balance)
}

func TestRedeemRetriesCollisionOnce(t *testing.T) {
	codes := []string{"dup-code", "fresh-code"}
	var calls int
	gen := func() string {
		code := codes[calls%len(codes)]
		calls++
		return code
	}

	svc, store, spender := newTestRewardService(400, gen)
	store.rewards = append(store.rewards, models.Reward{
		ID: 99, UserID: 2, Type: "coupon5", Code: "dup-code", Status: models.StatusActive,
	})

	reward, err := svc.Redeem(context.Background(), 1, "coupon5")
	require.NoError(t, err)

	assert.Equal(t, "fresh-code", reward.Code)
	assert.Equal(t, 2, calls)
	// Списание прошло ровно один раз, несмотря на повтор транзакции
	assert.Zero(t, spender.balance)
	assert.Len(t, store.rewards, 2)
}

func TestRedeemCollisionExhaustsRetries(t *testing.T) {
	gen := func() string { return "dup-code" }

	svc, store, spender := newTestRewardService(400, gen)
	store.rewards = append(store.rewards, models.Reward{
		ID: 99, UserID: 2, Type: "coupon5", Code: "dup-code", Status: models.StatusActive,
	})

	_, err := svc.Redeem(context.Background(), 1, "coupon5")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeCodeCollision, appErr.Code)

	// Обе попытки откатились целиком
	assert.Equal(t, int64(400), spender.balance)
	assert.Len(t, store.rewards, 1)
}

func TestRedeemStorageFailure(t *testing.T) {
	svc, store, spender := newTestRewardService(400, nil)
	store.insertErr = stderrors.New("connection reset")

	_, err := svc.Redeem(context.Background(), 1, "coupon5")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDatabaseError, appErr.Code)
	assert.Equal(t, int64(400), spender.balance)
}

func TestListRewardsNewestFirst(t *testing.T) {
	svc, store, _ := newTestRewardService(1000, nil)
	store.rewards = append(store.rewards,
		models.Reward{ID: 1, UserID: 1, Type: "sword", Code: "a"},
		models.Reward{ID: 2, UserID: 2, Type: "sword", Code: "b"},
		models.Reward{ID: 3, UserID: 1, Type: "coupon5", Code: "c"},
	)

	rewards, err := svc.ListRewards(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	assert.Equal(t, int64(3), rewards[0].ID)
	assert.Equal(t, int64(1), rewards[1].ID)
}

func TestCatalogPrices(t *testing.T) {
	svc, _, _ := newTestRewardService(0, nil)

	items := svc.Catalog()
	require.Len(t, items, 3)

	prices := map[string]int64{}
	for _, item := range items {
		prices[item.Type] = item.Price
	}
	assert.Equal(t, int64(200), prices["sword"])
	assert.Equal(t, int64(400), prices["coupon5"])
	assert.Equal(t, int64(700), prices["coupon10"])

	price, ok := models.PriceFor("coupon10")
	require.True(t, ok)
	assert.Equal(t, int64(700), price)
	_, ok = models.PriceFor("castle")
	assert.False(t, ok)
}
