package entity

import "github.com/shopspring/decimal"

// Shift turno de trabajo fijo. Solo existen los tres turnos de Work_time.
type Shift int

const (
	ShiftNight   Shift = 1 // 00:00 - 08:00
	ShiftDay     Shift = 2 // 08:00 - 16:00
	ShiftEvening Shift = 3 // 16:00 - 00:00
)

// Shifts en el orden en que se ofrecen.
var Shifts = []Shift{ShiftNight, ShiftDay, ShiftEvening}

// Valid indica si el turno es uno de los tres fijos.
func (s Shift) Valid() bool {
	return s >= ShiftNight && s <= ShiftEvening
}

// Bounds devuelve inicio y fin del turno con el formato de Work_time (HH:MM).
func (s Shift) Bounds() (start, end string) {
	switch s {
	case ShiftNight:
		return "00:00", "08:00"
	case ShiftDay:
		return "08:00", "16:00"
	case ShiftEvening:
		return "16:00", "00:00"
	}
	return "", ""
}

// ShiftFromBounds turno cuyos límites coinciden con los de Work_time. Otro par devuelve 0.
func ShiftFromBounds(start, end string) Shift {
	for _, s := range Shifts {
		if a, b := s.Bounds(); a == start && b == end {
			return s
		}
	}
	return 0
}

func (s Shift) String() string {
	start, end := s.Bounds()
	if start == "" {
		return "?"
	}
	return start + " - " + end
}

// Employee datos de empleado ligados 1:1 a un User con RoleEmployee.
type Employee struct {
	ID          int64
	UserID      int64
	Salary      decimal.Decimal
	Shift       Shift
	PositionIDs []int64
}

// Position entrada de la tabla de cargos.
type Position struct {
	ID   int64
	Name string
}
