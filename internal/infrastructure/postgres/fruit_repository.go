package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

var _ repository.FruitRepository = (*FruitRepo)(nil)

// Expiration_date es una fecha; el plazo en días se deriva restando Creation_date.
const fruitColumns = `f.Id, f.Name, f.Creation_date, f.Price, (f.Expiration_date - f.Creation_date), f.Producer_Id`

// FruitRepo tabla Fruits y rutinas del catálogo.
type FruitRepo struct {
	q Querier
}

// NewFruitRepository construye el adaptador.
func NewFruitRepository(q Querier) *FruitRepo {
	return &FruitRepo{q: q}
}

// List catálogo completo ordenado por nombre.
func (r *FruitRepo) List(ctx context.Context) ([]*entity.Fruit, error) {
	query := `SELECT ` + fruitColumns + ` FROM Fruits f ORDER BY f.Name, f.Id`
	return r.list(ctx, "list fruits", query)
}

// FindByNameFold frutas cuyo nombre coincide sin distinguir mayúsculas.
func (r *FruitRepo) FindByNameFold(ctx context.Context, name string, limit int) ([]*entity.Fruit, error) {
	query := `SELECT ` + fruitColumns + ` FROM Fruits f WHERE LOWER(f.Name) = LOWER($1) ORDER BY f.Id LIMIT $2`
	return r.list(ctx, "find fruits by name", query, name, limit)
}

// FindByName frutas con el nombre exacto.
func (r *FruitRepo) FindByName(ctx context.Context, name string, limit int) ([]*entity.Fruit, error) {
	query := `SELECT ` + fruitColumns + ` FROM Fruits f WHERE f.Name = $1 ORDER BY f.Id LIMIT $2`
	return r.list(ctx, "find fruits by exact name", query, name, limit)
}

// GetDetails fruta con fecha de vencimiento y productor.
func (r *FruitRepo) GetDetails(ctx context.Context, id int64) (*entity.FruitDetails, error) {
	query := `
		SELECT ` + fruitColumns + `, f.Expiration_date, p.Name, p.Country
		FROM Fruits f
		JOIN Producers p ON p.Id = f.Producer_Id
		WHERE f.Id = $1`
	var d entity.FruitDetails
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.CreationDate, &d.Price, &d.ExpirationDays, &d.ProducerID,
		&d.ExpirationDate, &d.ProducerName, &d.ProducerCountry,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fruit details: %w", err)
	}
	return &d, nil
}

// Add llama a la rutina AddFruit y recupera el Id de la fila creada dentro de la misma
// conexión, por lo que debe usarse con una tx.
func (r *FruitRepo) Add(ctx context.Context, fruit *entity.Fruit) error {
	_, err := r.q.Exec(ctx, `CALL AddFruit($1, $2::date, $3, $4, $5)`,
		fruit.Name, fruit.CreationDate, fruit.Price, fruit.ExpirationDays, fruit.ProducerID,
	)
	if err != nil {
		return classify("call AddFruit", err)
	}
	err = r.q.QueryRow(ctx,
		`SELECT Id FROM Fruits WHERE Name = $1 AND Producer_Id = $2 ORDER BY Id DESC LIMIT 1`,
		fruit.Name, fruit.ProducerID,
	).Scan(&fruit.ID)
	if err != nil {
		return fmt.Errorf("fruit id after AddFruit: %w", err)
	}
	return nil
}

// UpdatePriceByPercentage llama a la rutina UpdateFruitPriceByPercentage.
func (r *FruitRepo) UpdatePriceByPercentage(ctx context.Context, fruitID int64, percentage decimal.Decimal) error {
	if _, err := r.q.Exec(ctx, `CALL UpdateFruitPriceByPercentage($1, $2)`, fruitID, percentage); err != nil {
		return classify("call UpdateFruitPriceByPercentage", err)
	}
	return nil
}

// Delete borra la fruta por Id.
func (r *FruitRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM Fruits WHERE Id = $1`, id); err != nil {
		return classify("delete fruit", err)
	}
	return nil
}

func (r *FruitRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Fruit, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Fruit
	for rows.Next() {
		var f entity.Fruit
		if err := rows.Scan(&f.ID, &f.Name, &f.CreationDate, &f.Price, &f.ExpirationDays, &f.ProducerID); err != nil {
			return nil, fmt.Errorf("scan fruit: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
