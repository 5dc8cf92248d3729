package dto

import "github.com/kosmp/BD-5-sem/internal/domain/entity"

// AddEmployeeRequest promoción de un cliente a empleado.
type AddEmployeeRequest struct {
	FirstName   string // nombre del usuario a promover, sin distinguir mayúsculas
	Salary      string
	Shift       entity.Shift
	PositionIDs []int64
}
