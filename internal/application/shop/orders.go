package shop

import (
	"context"

	"github.com/kosmp/BD-5-sem/internal/application/dto"
	"github.com/kosmp/BD-5-sem/internal/application/session"
	"github.com/kosmp/BD-5-sem/internal/domain/access"
	"github.com/kosmp/BD-5-sem/internal/domain/delivery"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/pricing"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

// PlaceOrder crea un pedido del cliente autenticado. El total se fija con el precio vigente
// y la fecha de creación es la de hoy.
func (s *Shop) PlaceOrder(ctx context.Context, sess *session.Session, in dto.PlaceOrderRequest) (order *entity.Order, err error) {
	defer func() { s.report(sess, "place_order", err) }()

	userID, err := s.authorize(ctx, sess, access.ActionPlaceOrder)
	if err != nil {
		return nil, err
	}
	quantity, err := parsePositiveInt("la cantidad", in.Quantity)
	if err != nil {
		return nil, err
	}
	name, err := requireText("el nombre de la fruta", in.FruitName)
	if err != nil {
		return nil, err
	}
	clientID, err := s.clientID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.inTx(ctx, func(repos repository.Repositories) error {
		fruits, err := repos.Fruits.FindByNameFold(ctx, name, lookupLimit)
		if err != nil {
			return err
		}
		fruit, err := single(fruits, "fruta", name)
		if err != nil {
			return err
		}
		order = &entity.Order{
			CreationDate: s.today(),
			TotalPrice:   pricing.OrderTotal(fruit.Price, quantity),
			Quantity:     quantity,
			ClientID:     clientID,
			FruitID:      fruit.ID,
		}
		return repos.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// LeaveReview publica una reseña mediante la rutina AddReview. La evaluación se valida
// localmente (1 a 5) antes de llamar a la base, que la vuelve a validar.
func (s *Shop) LeaveReview(ctx context.Context, sess *session.Session, in dto.LeaveReviewRequest) (review *entity.Review, err error) {
	defer func() { s.report(sess, "leave_review", err) }()

	userID, err := s.authorize(ctx, sess, access.ActionLeaveReview)
	if err != nil {
		return nil, err
	}
	evaluation, err := parsePositiveInt("la evaluación", in.Evaluation)
	if err != nil {
		return nil, err
	}
	if evaluation < entity.MinEvaluation || evaluation > entity.MaxEvaluation {
		return nil, invalid("la evaluación debe estar entre %d y %d", entity.MinEvaluation, entity.MaxEvaluation)
	}
	name, err := requireText("el nombre de la fruta", in.FruitName)
	if err != nil {
		return nil, err
	}
	clientID, err := s.clientID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.inTx(ctx, func(repos repository.Repositories) error {
		fruits, err := repos.Fruits.FindByNameFold(ctx, name, lookupLimit)
		if err != nil {
			return err
		}
		fruit, err := single(fruits, "fruta", name)
		if err != nil {
			return err
		}
		review = &entity.Review{
			Text:       in.Text,
			Evaluation: evaluation,
			ClientID:   clientID,
			FruitID:    fruit.ID,
		}
		return repos.Reviews.Add(ctx, review)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// OrderHistory pedidos del cliente autenticado, del más nuevo al más viejo, con el estado
// de entrega calculado en este momento.
func (s *Shop) OrderHistory(ctx context.Context, sess *session.Session) (items []dto.OrderHistoryItem, err error) {
	defer func() { s.report(sess, "order_history", err) }()

	userID, err := s.authorize(ctx, sess, access.ActionViewOrderHistory)
	if err != nil {
		return nil, err
	}
	clientID, err := s.clientID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repos.Orders.HistoryByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	items = make([]dto.OrderHistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.OrderHistoryItem{
			OrderHistoryRow: row,
			Status:          delivery.Project(row.DeliveryDate, now),
		})
	}
	return items, nil
}
