package dto

import (
	"github.com/kosmp/BD-5-sem/internal/domain/delivery"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
)

// PlaceOrderRequest pedido de una fruta. Quantity llega como texto y se valida en el caso de uso.
type PlaceOrderRequest struct {
	FruitName string
	Quantity  string
}

// LeaveReviewRequest reseña de una fruta. Evaluation llega como texto (1 a 5).
type LeaveReviewRequest struct {
	FruitName  string
	Text       string
	Evaluation string
}

// OrderHistoryItem fila del historial con el estado calculado al momento de leer.
type OrderHistoryItem struct {
	entity.OrderHistoryRow
	Status delivery.Status
}
