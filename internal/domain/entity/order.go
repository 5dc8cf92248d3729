package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido de un cliente. TotalPrice es una foto de Price × Quantity al crear el pedido
// y no cambia aunque el precio de la fruta se actualice después.
type Order struct {
	ID           int64
	CreationDate time.Time
	TotalPrice   decimal.Decimal
	Quantity     int
	ClientID     int64
	FruitID      int64
}

// Delivery entrega de un pedido. Un pedido tiene 0 o 1 entregas.
type Delivery struct {
	ID           int64
	DeliveryDate time.Time
	OrderID      int64
}

// Review reseña de un cliente sobre una fruta. Evaluation va de 1 a 5.
type Review struct {
	ID         int64
	Text       string
	Evaluation int
	ClientID   int64
	FruitID    int64
}

// Límites de Review.Evaluation.
const (
	MinEvaluation = 1
	MaxEvaluation = 5
)
