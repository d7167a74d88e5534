package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"illara-backend/internal/common/cache"
	"illara-backend/internal/common/errors"
	"illara-backend/internal/features/wallet/models"
	"illara-backend/internal/platform/postgres"
)

// stubTx удовлетворяет postgres.Tx; in-memory хранилище его не использует
type stubTx struct{}

func (stubTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (stubTx) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return nil
}

// memWalletStore — in-memory замена постгрес-репозитория для юнитов сервиса
type memWalletStore struct {
	mu       sync.Mutex
	balances map[int64]int64
	entries  []models.LedgerEntry
	nextID   int64

	failNextLedgerInsert error
}

func newMemWalletStore() *memWalletStore {
	return &memWalletStore{balances: make(map[int64]int64)}
}

func (m *memWalletStore) EnsureWallet(ctx context.Context, tx postgres.Tx, userID int64) error {
	if _, ok := m.balances[userID]; !ok {
		m.balances[userID] = 0
	}
	return nil
}

func (m *memWalletStore) GetBalance(ctx context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID], nil
}

func (m *memWalletStore) GetBalanceForUpdate(ctx context.Context, tx postgres.Tx, userID int64) (int64, error) {
	return m.balances[userID], nil
}

func (m *memWalletStore) UpdateBalance(ctx context.Context, tx postgres.Tx, userID, balance int64) error {
	m.balances[userID] = balance
	return nil
}

func (m *memWalletStore) InsertLedgerEntry(ctx context.Context, tx postgres.Tx, entry *models.LedgerEntry) error {
	if m.failNextLedgerInsert != nil {
		err := m.failNextLedgerInsert
		m.failNextLedgerInsert = nil
		return err
	}
	m.nextID++
	entry.ID = m.nextID
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memWalletStore) RecentEntries(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.LedgerEntry
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.entries[i].UserID == userID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

// ledgerSum проверяет инвариант: баланс равен сумме записей леджера
func (m *memWalletStore) ledgerSum(userID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sum int64
	for _, e := range m.entries {
		if e.UserID == userID {
			sum += e.Amount
		}
	}
	return sum
}

// memTxRunner сериализует "транзакции" мьютексом и откатывает состояние
// хранилища при ошибке функции
type memTxRunner struct {
	store *memWalletStore
}

func (r *memTxRunner) WithTx(ctx context.Context, fn func(tx postgres.Tx) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	balancesBefore := make(map[int64]int64, len(r.store.balances))
	for k, v := range r.store.balances {
		balancesBefore[k] = v
	}
	entriesBefore := len(r.store.entries)

	if err := fn(stubTx{}); err != nil {
		r.store.balances = balancesBefore
		r.store.entries = r.store.entries[:entriesBefore]
		return err
	}
	return nil
}

func newTestWalletService(t *testing.T) (WalletService, *memWalletStore) {
	t.Helper()
	store := newMemWalletStore()
	return NewWalletService(store, &memTxRunner{store: store}, nil, 0), store
}

func TestEarnRejectsNonPositiveAmount(t *testing.T) {
	svc, store := newTestWalletService(t)

	for _, amount := range []int64{0, -5} {
		_, err := svc.Earn(context.Background(), 1, amount, "daily bonus")
		require.Error(t, err)

		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeInvalidAmount, appErr.Code)
	}

	balance, err := store.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, balance)
	assert.Empty(t, store.entries)
}

func TestSpendRejectsNonPositiveAmount(t *testing.T) {
	svc, store := newTestWalletService(t)
	store.balances[1] = 100

	_, err := svc.Spend(context.Background(), 1, -1, "sword")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidAmount, appErr.Code)
	assert.Equal(t, int64(100), store.balances[1])
}

func TestEarnAppendsLedgerEntry(t *testing.T) {
	svc, store := newTestWalletService(t)

	balance, err := svc.Earn(context.Background(), 1, 50, "daily bonus")
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, int64(50), entry.Amount)
	assert.Equal(t, models.EntryTypeEarn, entry.Type)
	assert.Equal(t, "daily bonus", entry.Meta)
	assert.Equal(t, store.ledgerSum(1), store.balances[1])
}

func TestSpendInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	svc, store := newTestWalletService(t)
	store.balances[1] = 50

	_, err := svc.Spend(context.Background(), 1, 80, "sword")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInsufficientBalance, appErr.Code)
	assert.Equal(t, int64(50), appErr.Details["balance"])
	assert.Equal(t, int64(80), appErr.Details["amount"])

	assert.Equal(t, int64(50), store.balances[1])
	assert.Empty(t, store.entries)
}

func TestSpendExactBalance(t *testing.T) {
	svc, store := newTestWalletService(t)
	store.balances[1] = 50

	balance, err := svc.Spend(context.Background(), 1, 50, "sword")
	require.NoError(t, err)
	assert.Zero(t, balance)

	require.Len(t, store.entries, 1)
	assert.Equal(t, int64(-50), store.entries[0].Amount)
	assert.Equal(t, models.EntryTypeSpend, store.entries[0].Type)
	assert.Equal(t, store.ledgerSum(1), store.balances[1])
}

func TestEarnRollsBackOnLedgerFailure(t *testing.T) {
	svc, store := newTestWalletService(t)
	store.failNextLedgerInsert = stderrors.New("connection reset")

	_, err := svc.Earn(context.Background(), 1, 50, "daily bonus")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDatabaseError, appErr.Code)

	// Ни изменения баланса, ни записи леджера после отката
	assert.Zero(t, store.balances[1])
	assert.Empty(t, store.entries)
}

func TestSpendRollsBackOnLedgerFailure(t *testing.T) {
	svc, store := newTestWalletService(t)
	store.balances[1] = 100
	store.failNextLedgerInsert = stderrors.New("connection reset")

	_, err := svc.Spend(context.Background(), 1, 40, "sword")
	require.Error(t, err)

	assert.Equal(t, int64(100), store.balances[1])
	assert.Empty(t, store.entries)
	assert.Equal(t, store.ledgerSum(1)+100, store.balances[1])
}

func TestConcurrentSpendsSerialize(t *testing.T) {
	const (
		n      = 8
		amount = int64(10)
	)

	svc, store := newTestWalletService(t)
	store.balances[1] = (n - 1) * amount

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Spend(context.Background(), 1, amount, "sword")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, insufficient int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		require.Equal(t, errors.ErrCodeInsufficientBalance, appErr.Code)
		insufficient++
	}

	assert.Equal(t, n-1, succeeded)
	assert.Equal(t, 1, insufficient)
	assert.Zero(t, store.balances[1])
	assert.Len(t, store.entries, n-1)
	// Стартовый баланс плюс сумма леджера сходится с итоговым балансом
	assert.Equal(t, (n-1)*amount+store.ledgerSum(1), store.balances[1])
}

func TestGetSnapshotLimitsLedger(t *testing.T) {
	svc, store := newTestWalletService(t)

	for i := 1; i <= 25; i++ {
		_, err := svc.Earn(context.Background(), 1, int64(i), fmt.Sprintf("session %d", i))
		require.NoError(t, err)
	}

	snapshot, err := svc.GetSnapshot(context.Background(), 1)
	require.NoError(t, err)

	assert.Len(t, snapshot.LastTx, snapshotLedgerLimit)
	// Новые первыми: последний заработок наверху
	assert.Equal(t, "session 25", snapshot.LastTx[0].Meta)
	assert.Equal(t, "session 6", snapshot.LastTx[len(snapshot.LastTx)-1].Meta)
	assert.Equal(t, store.ledgerSum(1), snapshot.Balance)
}

func TestGetSnapshotEmptyWallet(t *testing.T) {
	svc, _ := newTestWalletService(t)

	snapshot, err := svc.GetSnapshot(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, snapshot.Balance)
	assert.Empty(t, snapshot.LastTx)
}

func TestRecentLedgerClampsLimit(t *testing.T) {
	svc, _ := newTestWalletService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Earn(context.Background(), 1, 10, "bonus")
		require.NoError(t, err)
	}

	entries, err := svc.RecentLedger(context.Background(), 1, -1)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSnapshotCacheInvalidatedOnMutation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	cacheService := cache.NewCacheService(client)

	store := newMemWalletStore()
	svc := NewWalletService(store, &memTxRunner{store: store}, cacheService, time.Minute)

	_, err := svc.Earn(context.Background(), 1, 100, "bonus")
	require.NoError(t, err)

	first, err := svc.GetSnapshot(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(100), first.Balance)

	// Подмена состояния за спиной кэша: снимок должен прийти из redis
	store.mu.Lock()
	store.balances[1] = 999
	store.mu.Unlock()

	cached, err := svc.GetSnapshot(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), cached.Balance)

	// Любая мутация сбрасывает снимок
	_, err = svc.Spend(context.Background(), 1, 9, "sword")
	require.NoError(t, err)

	fresh, err := svc.GetSnapshot(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(990), fresh.Balance)
}
