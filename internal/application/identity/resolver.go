// Package identity resuelve el rol y el cliente de un usuario. Solo lectura.
package identity

import (
	"context"

	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

// Resolver consulta usuarios y clientes. Un usuario inexistente produce un resultado vacío,
// no un error; solo las fallas del almacenamiento se devuelven como error.
type Resolver struct {
	users   repository.UserRepository
	clients repository.ClientRepository
}

// NewResolver construye el resolver.
func NewResolver(users repository.UserRepository, clients repository.ClientRepository) *Resolver {
	return &Resolver{users: users, clients: clients}
}

// ResolveRole devuelve el rol del usuario o entity.RoleUnknown si no existe.
func (r *Resolver) ResolveRole(ctx context.Context, userID int64) (entity.Role, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return entity.RoleUnknown, err
	}
	if user == nil {
		return entity.RoleUnknown, nil
	}
	return user.Role, nil
}

// ResolveClientID devuelve el Client ligado al usuario; ok es false si no hay ninguno.
func (r *Resolver) ResolveClientID(ctx context.Context, userID int64) (id int64, ok bool, err error) {
	client, err := r.clients.GetByUserID(ctx, userID)
	if err != nil || client == nil {
		return 0, false, err
	}
	return client.ID, true, nil
}
