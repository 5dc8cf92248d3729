package shop

import (
	"context"
	"fmt"
	"strings"

	"github.com/kosmp/BD-5-sem/internal/application/dto"
	"github.com/kosmp/BD-5-sem/internal/application/session"
	"github.com/kosmp/BD-5-sem/internal/domain"
	"github.com/kosmp/BD-5-sem/internal/domain/account"
	"github.com/kosmp/BD-5-sem/internal/domain/entity"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

// Register da de alta un User con rol Client y su fila en Clients en una sola transacción,
// y deja la sesión autenticada con la nueva identidad.
func (s *Shop) Register(ctx context.Context, sess *session.Session, in dto.RegisterRequest) (user *entity.User, err error) {
	defer func() { s.report(sess, "register", err) }()

	if sess.Authenticated() {
		return nil, fmt.Errorf("%w: cierre la sesión antes de registrarse", domain.ErrConflict)
	}
	reg := account.Registration{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     strings.TrimSpace(in.Phone),
		Password:  in.Password,
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	user = &entity.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     reg.Phone,
		Password:  in.Password,
		Role:      entity.RoleClient,
	}
	err = s.inTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		return repos.Clients.Create(ctx, &entity.Client{UserID: user.ID, Address: strings.TrimSpace(in.Address)})
	})
	if err != nil {
		return nil, err
	}
	sess.Login(user.ID)
	return user, nil
}

// Login busca al usuario por la clave configurada y la contraseña. Si no hay coincidencia
// la sesión queda como estaba.
func (s *Shop) Login(ctx context.Context, sess *session.Session, in dto.LoginRequest) (user *entity.User, err error) {
	defer func() { s.report(sess, "login", err) }()

	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	switch s.loginKey {
	case LoginByPhone:
		user, err = s.repos.Users.FindByPhoneAndPassword(ctx, login, in.Password)
		if err != nil {
			return nil, err
		}
	default:
		users, err := s.repos.Users.FindByFirstNameAndPassword(ctx, login, in.Password, lookupLimit)
		if err != nil {
			return nil, err
		}
		if len(users) > 1 {
			return nil, fmt.Errorf("%w: varios usuarios con el nombre %q, use el teléfono", domain.ErrAmbiguousMatch, login)
		}
		if len(users) == 1 {
			user = users[0]
		}
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	sess.Login(user.ID)
	return user, nil
}

// Logout cierra la sesión actual.
func (s *Shop) Logout(sess *session.Session) {
	s.report(sess, "logout", nil)
	sess.Logout()
}

// WhoAmI devuelve el usuario autenticado.
func (s *Shop) WhoAmI(ctx context.Context, sess *session.Session) (*entity.User, error) {
	userID, ok := sess.UserID()
	if !ok {
		return nil, domain.ErrAuthRequired
	}
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %d", domain.ErrNotFound, userID)
	}
	return user, nil
}
