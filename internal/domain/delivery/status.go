// Package delivery proyecta el estado de un pedido a partir de sus fechas.
// El estado se calcula al leer y nunca se persiste.
package delivery

import (
	"fmt"
	"time"
)

// Kind tipo de estado de entrega.
type Kind int

const (
	Pending Kind = iota
	Delivered
	DeliveredToday
	InTransit
)

// Status estado proyectado. DaysRemaining solo tiene sentido en InTransit.
type Status struct {
	Kind          Kind
	DaysRemaining int
}

func (s Status) String() string {
	switch s.Kind {
	case Delivered:
		return "Delivered"
	case DeliveredToday:
		return "Delivered today"
	case InTransit:
		if s.DaysRemaining == 1 {
			return "1 day remaining"
		}
		return fmt.Sprintf("%d days remaining", s.DaysRemaining)
	default:
		return "Pending"
	}
}

// Project calcula el estado de un pedido. Sin fecha de entrega el pedido está pendiente;
// si no, se compara la fecha de entrega (DATE, sin zona) con la fecha local de now.
func Project(deliveryDate *time.Time, now time.Time) Status {
	if deliveryDate == nil {
		return Status{Kind: Pending}
	}
	days := daysBetween(now, *deliveryDate)
	switch {
	case days < 0:
		return Status{Kind: Delivered}
	case days == 0:
		return Status{Kind: DeliveredToday}
	default:
		return Status{Kind: InTransit, DaysRemaining: days}
	}
}

// daysBetween días de calendario desde la fecha local de from hasta la fecha to.
// to es un DATE (pgx lo entrega como medianoche UTC): se usan su año, mes y día sin convertir.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
