package postgres

import (
	"context"
	"database/sql"
)

// Узкие интерфейсы доступа к БД: репозитории принимают их вместо
// *sqlx.DB / *sqlx.Tx, чтобы один и тот же код работал и в транзакции,
// и вне её, а тесты могли подставлять заглушки.

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type DB interface {
	Execer
	Getter
	Selecter
}

type Tx interface {
	Execer
	Getter
}

// TxRunner выполняет единицу работы в одной транзакции БД
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}
