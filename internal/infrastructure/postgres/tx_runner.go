package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kosmp/BD-5-sem/internal/application/shop"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

var _ shop.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con todos los repositorios atados a la tx y hace
// Commit si fn devuelve nil. En cualquier otro caso el Rollback diferido descarta los cambios.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories arma todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Users:     NewUserRepository(q),
		Clients:   NewClientRepository(q),
		Employees: NewEmployeeRepository(q),
		Positions: NewPositionRepository(q),
		Producers: NewProducerRepository(q),
		Fruits:    NewFruitRepository(q),
		Orders:    NewOrderRepository(q),
		Reviews:   NewReviewRepository(q),
	}
}
