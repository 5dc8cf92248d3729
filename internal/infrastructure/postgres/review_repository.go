package postgres

import (
	"context"
	"fmt"

	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo tabla Reviews y sus rutinas.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador.
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Add llama a AddReview, que valida la evaluación, y recupera el Id creado.
func (r *ReviewRepo) Add(ctx context.Context, review *entity.Review) error {
	_, err := r.q.Exec(ctx, `CALL AddReview($1, $2, $3, $4)`,
		review.Text, review.Evaluation, review.ClientID, review.FruitID,
	)
	if err != nil {
		return classify("call AddReview", err)
	}
	err = r.q.QueryRow(ctx,
		`SELECT Id FROM Reviews WHERE Client_Id = $1 AND Fruit_Id = $2 ORDER BY Id DESC LIMIT 1`,
		review.ClientID, review.FruitID,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("review id after AddReview: %w", err)
	}
	return nil
}

// ListByFruit reseñas de la fruta con el nombre de su autor.
func (r *ReviewRepo) ListByFruit(ctx context.Context, fruitID int64) ([]entity.ReviewView, error) {
	query := `
		SELECT rv.Id, rv.review_text, rv.evaluation, u.First_Name, u.Last_Name
		FROM Reviews rv
		JOIN Clients c ON c.Id = rv.Client_Id
		JOIN Users u ON u.Id = c.User_Id
		WHERE rv.Fruit_Id = $1
		ORDER BY rv.Id`
	rows, err := r.q.Query(ctx, query, fruitID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	var list []entity.ReviewView
	for rows.Next() {
		var v entity.ReviewView
		if err := rows.Scan(&v.ID, &v.Text, &v.Evaluation, &v.AuthorFirstName, &v.AuthorLastName); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// DeleteLowRated llama a DeleteLowRatedReviewsForAllFruits.
func (r *ReviewRepo) DeleteLowRated(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `CALL DeleteLowRatedReviewsForAllFruits()`); err != nil {
		return classify("call DeleteLowRatedReviewsForAllFruits", err)
	}
	return nil
}
