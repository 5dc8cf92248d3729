package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste la ficha de cliente y completa su Id.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO Clients (User_Id, Address) VALUES ($1, $2) RETURNING Id`,
		client.UserID, client.Address,
	).Scan(&client.ID)
	if err != nil {
		return classify("insert client", err)
	}
	return nil
}

// GetByUserID ficha de cliente del usuario, o nil.
func (r *ClientRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx,
		`SELECT Id, User_Id, Address FROM Clients WHERE User_Id = $1`, userID,
	).Scan(&c.ID, &c.UserID, &c.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// DeleteByUserID borra la ficha de cliente del usuario.
func (r *ClientRepo) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM Clients WHERE User_Id = $1`, userID)
	if err != nil {
		return 0, classify("delete client", err)
	}
	return tag.RowsAffected(), nil
}
