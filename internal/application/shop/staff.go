package shop

import (
	"context"
	"fmt"

	"github.com/kosmp/BD-5-sem/internal/application/dto"
	"github.com/kosmp/BD-5-sem/internal/application/session"
	"github.com/kosmp/BD-5-sem/internal/domain"
	"github.com/kosmp/BD-5-sem/internal/domain/access"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

// AddEmployee promueve un cliente a empleado. Todo ocurre en una transacción: se borra la
// fila de Clients, se crea la de Employees con sus cargos y se cambia el rol del usuario.
// Si falla cualquier paso no queda ningún estado intermedio visible.
func (s *Shop) AddEmployee(ctx context.Context, sess *session.Session, in dto.AddEmployeeRequest) (employee *entity.Employee, err error) {
	defer func() { s.report(sess, "add_employee", err) }()

	if _, err = s.authorize(ctx, sess, access.ActionAddEmployee); err != nil {
		return nil, err
	}
	name, err := requireText("el nombre del usuario", in.FirstName)
	if err != nil {
		return nil, err
	}
	salary, err := parseDecimal("el salario", in.Salary)
	if err != nil {
		return nil, err
	}
	if salary.IsNegative() {
		return nil, invalid("el salario no puede ser negativo")
	}
	if !in.Shift.Valid() {
		return nil, invalid("turno de trabajo desconocido")
	}
	positionIDs := uniqueIDs(in.PositionIDs)
	if len(positionIDs) == 0 {
		return nil, invalid("debe elegir al menos un cargo")
	}

	err = s.inTx(ctx, func(repos repository.Repositories) error {
		if err := checkPositions(ctx, repos.Positions, positionIDs); err != nil {
			return err
		}
		users, err := repos.Users.FindByFirstName(ctx, name, lookupLimit)
		if err != nil {
			return err
		}
		user, err := single(users, "usuario", name)
		if err != nil {
			return err
		}
		if user.Role != entity.RoleClient {
			return fmt.Errorf("%w: el usuario %q tiene rol %s, solo se promueven clientes", domain.ErrConflict, name, user.Role)
		}
		existing, err := repos.Employees.GetByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: el usuario %q ya tiene ficha de empleado", domain.ErrConflict, name)
		}
		if _, err := repos.Clients.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		employee = &entity.Employee{
			UserID:      user.ID,
			Salary:      salary,
			Shift:       in.Shift,
			PositionIDs: positionIDs,
		}
		if err := repos.Employees.Create(ctx, employee); err != nil {
			return err
		}
		for _, pid := range positionIDs {
			if err := repos.Employees.AddPosition(ctx, employee.ID, pid); err != nil {
				return err
			}
		}
		return repos.Users.UpdateRole(ctx, user.ID, entity.RoleEmployee)
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

// ListEmployees empleados con turno y cargos.
func (s *Shop) ListEmployees(ctx context.Context) ([]entity.EmployeeProfile, error) {
	return s.repos.Employees.ListProfiles(ctx)
}

// ListPositions tabla de cargos disponibles.
func (s *Shop) ListPositions(ctx context.Context) ([]entity.Position, error) {
	return s.repos.Positions.List(ctx)
}

func checkPositions(ctx context.Context, positions repository.PositionRepository, ids []int64) error {
	list, err := positions.List(ctx)
	if err != nil {
		return err
	}
	known := make(map[int64]bool, len(list))
	for _, p := range list {
		known[p.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return invalid("cargo %d inexistente", id)
		}
	}
	return nil
}

// uniqueIDs conserva el orden de la primera aparición.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
