package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modelos de lectura armados con JOINs; nunca se persisten.

// FruitDetails fruta con los datos de su productor.
type FruitDetails struct {
	Fruit
	ExpirationDate  time.Time
	ProducerName    string
	ProducerCountry string
}

// ReviewView reseña con el nombre de su autor.
type ReviewView struct {
	ID              int64
	Text            string
	Evaluation      int
	AuthorFirstName string
	AuthorLastName  string
}

// EmployeeProfile empleado con su turno y los nombres de sus cargos.
type EmployeeProfile struct {
	ID        int64
	FirstName string
	LastName  string
	Salary    decimal.Decimal
	ShiftFrom string
	ShiftTo   string
	Positions []string
}

// OrderHistoryRow fila del historial de pedidos de un cliente. DeliveryDate es nil
// cuando el pedido aún no tiene entrega.
type OrderHistoryRow struct {
	OrderID      int64
	CreationDate time.Time
	DeliveryDate *time.Time
	FruitName    string
	TotalPrice   decimal.Decimal
	Quantity     int
}
