package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

var _ repository.ProducerRepository = (*ProducerRepo)(nil)

// ProducerRepo tabla Producers.
type ProducerRepo struct {
	q Querier
}

// NewProducerRepository construye el adaptador.
func NewProducerRepository(q Querier) *ProducerRepo {
	return &ProducerRepo{q: q}
}

// Create persiste un productor y completa su Id.
func (r *ProducerRepo) Create(ctx context.Context, producer *entity.Producer) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO Producers (Name, Country) VALUES ($1, $2) RETURNING Id`,
		producer.Name, producer.Country,
	).Scan(&producer.ID)
	if err != nil {
		return classify("insert producer", err)
	}
	return nil
}

// GetByID obtiene un productor por Id.
func (r *ProducerRepo) GetByID(ctx context.Context, id int64) (*entity.Producer, error) {
	var p entity.Producer
	err := r.q.QueryRow(ctx, `SELECT Id, Name, Country FROM Producers WHERE Id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Country)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producer: %w", err)
	}
	return &p, nil
}

// List todos los productores ordenados por Id.
func (r *ProducerRepo) List(ctx context.Context) ([]*entity.Producer, error) {
	rows, err := r.q.Query(ctx, `SELECT Id, Name, Country FROM Producers ORDER BY Id`)
	if err != nil {
		return nil, fmt.Errorf("list producers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producer
	for rows.Next() {
		var p entity.Producer
		if err := rows.Scan(&p.ID, &p.Name, &p.Country); err != nil {
			return nil, fmt.Errorf("scan producer: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
