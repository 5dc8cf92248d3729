package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producer productor de fruta.
type Producer struct {
	ID      int64
	Name    string
	Country string
}

// Fruit producto del catálogo. Name funciona como clave natural sin distinguir mayúsculas.
// ExpirationDays y los campos derivados los calcula la rutina AddFruit del motor.
type Fruit struct {
	ID             int64
	Name           string
	CreationDate   time.Time
	Price          decimal.Decimal
	ExpirationDays int
	ProducerID     int64
}
