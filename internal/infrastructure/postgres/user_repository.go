package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `Id, First_Name, Last_Name, Phone, Password, Role_Id`

// UserRepo implementación del puerto UserRepository sobre la tabla Users.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y completa su Id.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO Users (First_Name, Last_Name, Phone, Password, Role_Id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING Id`
	err := r.q.QueryRow(ctx, query,
		user.FirstName, user.LastName, user.Phone, user.Password, user.Role.ID(),
	).Scan(&user.ID)
	if err != nil {
		return classify("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por Id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM Users WHERE Id = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// FindByFirstName usuarios con ese nombre, sin distinguir mayúsculas.
func (r *UserRepo) FindByFirstName(ctx context.Context, firstName string, limit int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM Users WHERE LOWER(First_Name) = LOWER($1) ORDER BY Id LIMIT $2`
	return r.list(ctx, "find users by first name", query, firstName, limit)
}

// FindByFirstNameAndPassword credenciales por nombre (comparación exacta).
func (r *UserRepo) FindByFirstNameAndPassword(ctx context.Context, firstName, password string, limit int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM Users WHERE First_Name = $1 AND Password = $2 ORDER BY Id LIMIT $3`
	return r.list(ctx, "find users by credentials", query, firstName, password, limit)
}

// FindByPhoneAndPassword credenciales por teléfono. Phone es único.
func (r *UserRepo) FindByPhoneAndPassword(ctx context.Context, phone, password string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM Users WHERE Phone = $1 AND Password = $2`
	u, err := scanUser(r.q.QueryRow(ctx, query, phone, password))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by phone: %w", err)
	}
	return u, nil
}

// UpdateRole cambia Role_Id.
func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role entity.Role) error {
	tag, err := r.q.Exec(ctx, `UPDATE Users SET Role_Id = $2 WHERE Id = $1`, id, role.ID())
	if err != nil {
		return classify("update user role", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user role: usuario %d inexistente", id)
	}
	return nil
}

func (r *UserRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u      entity.User
		roleID int
	)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Phone, &u.Password, &roleID); err != nil {
		return nil, err
	}
	u.Role = entity.RoleFromID(roleID)
	return &u, nil
}
