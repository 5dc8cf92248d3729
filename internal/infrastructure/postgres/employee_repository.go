package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kosmp/BD-5-sem/internal/domain"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

var (
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.PositionRepository = (*PositionRepo)(nil)
)

// EmployeeRepo tablas Employees, Work_time y Positions_Employees.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create inserta el empleado. Work_time se resuelve por los límites del turno; si la tabla
// no tiene ese turno el INSERT falla por Work_time_Id nulo.
func (r *EmployeeRepo) Create(ctx context.Context, employee *entity.Employee) error {
	start, end := employee.Shift.Bounds()
	if start == "" {
		return fmt.Errorf("%w: turno %d", domain.ErrInvalidInput, employee.Shift)
	}
	query := `
		INSERT INTO Employees (Salary, User_Id, Work_time_Id)
		VALUES ($1, $2, (SELECT Id FROM Work_time WHERE start_work = $3::time AND end_work = $4::time))
		RETURNING Id`
	err := r.q.QueryRow(ctx, query, employee.Salary, employee.UserID, start, end).Scan(&employee.ID)
	if err != nil {
		return classify("insert employee", err)
	}
	return nil
}

// AddPosition vincula un cargo al empleado.
func (r *EmployeeRepo) AddPosition(ctx context.Context, employeeID, positionID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO Positions_Employees (Position_Id, Employee_Id) VALUES ($1, $2)`,
		positionID, employeeID,
	)
	if err != nil {
		return classify("insert employee position", err)
	}
	return nil
}

// GetByUserID empleado del usuario con su turno y cargos, o nil.
func (r *EmployeeRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Employee, error) {
	query := `
		SELECT e.Id, e.User_Id, e.Salary,
		       to_char(w.start_work, 'HH24:MI'), to_char(w.end_work, 'HH24:MI'),
		       ARRAY(SELECT pe.Position_Id FROM Positions_Employees pe
		             WHERE pe.Employee_Id = e.Id ORDER BY pe.Position_Id)
		FROM Employees e
		JOIN Work_time w ON w.Id = e.Work_time_Id
		WHERE e.User_Id = $1`
	var (
		e          entity.Employee
		start, end string
	)
	err := r.q.QueryRow(ctx, query, userID).Scan(&e.ID, &e.UserID, &e.Salary, &start, &end, &e.PositionIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	e.Shift = entity.ShiftFromBounds(start, end)
	return &e, nil
}

// ListProfiles empleados con turno y nombres de cargos.
func (r *EmployeeRepo) ListProfiles(ctx context.Context) ([]entity.EmployeeProfile, error) {
	query := `
		SELECT e.Id, u.First_Name, u.Last_Name, e.Salary,
		       to_char(w.start_work, 'HH24:MI'), to_char(w.end_work, 'HH24:MI'),
		       array_remove(ARRAY_AGG(p.Name ORDER BY p.Name), NULL)
		FROM Employees e
		JOIN Users u ON u.Id = e.User_Id
		JOIN Work_time w ON w.Id = e.Work_time_Id
		LEFT JOIN Positions_Employees pe ON pe.Employee_Id = e.Id
		LEFT JOIN Positions p ON p.Id = pe.Position_Id
		GROUP BY e.Id, u.First_Name, u.Last_Name, e.Salary, w.start_work, w.end_work
		ORDER BY e.Id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []entity.EmployeeProfile
	for rows.Next() {
		var p entity.EmployeeProfile
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Salary, &p.ShiftFrom, &p.ShiftTo, &p.Positions); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// PositionRepo tabla Positions.
type PositionRepo struct {
	q Querier
}

// NewPositionRepository construye el adaptador.
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

// List todos los cargos ordenados por Id.
func (r *PositionRepo) List(ctx context.Context) ([]entity.Position, error) {
	rows, err := r.q.Query(ctx, `SELECT Id, Name FROM Positions ORDER BY Id`)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()
	var list []entity.Position
	for rows.Next() {
		var p entity.Position
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
