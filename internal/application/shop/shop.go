// Package shop es el motor de flujos de la tienda: cada operación verifica sesión y rol,
// valida la entrada y ejecuta sus escrituras en una sola transacción.
package shop

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kosmp/BD-5-sem/internal/application/identity"
	"github.com/kosmp/BD-5-sem/internal/application/session"
	"github.com/kosmp/BD-5-sem/internal/domain"
	"github.com/kosmp/BD-5-sem/internal/domain/access"
	"github.com/kosmp/BD-5-sem/internal/domain/repository"
)

// LoginKey columna con la que se identifica al usuario en el login.
type LoginKey string

const (
	LoginByFirstName LoginKey = "first_name"
	LoginByPhone     LoginKey = "phone"
)

// ParseLoginKey valida el valor configurado.
func ParseLoginKey(s string) (LoginKey, error) {
	switch k := LoginKey(strings.ToLower(strings.TrimSpace(s))); k {
	case LoginByFirstName, LoginByPhone:
		return k, nil
	case "":
		return LoginByFirstName, nil
	}
	return "", fmt.Errorf("%w: clave de login desconocida %q", domain.ErrInvalidInput, s)
}

// lookupLimit basta con 2 filas para distinguir "una" de "varias".
const lookupLimit = 2

// Options dependencias opcionales del motor.
type Options struct {
	LoginKey LoginKey
	Now      func() time.Time
	Logger   *zerolog.Logger
}

// Shop motor de flujos. repos está atado al pool y se usa para lecturas fuera de transacción.
type Shop struct {
	tx       TxRunner
	repos    repository.Repositories
	identity *identity.Resolver
	loginKey LoginKey
	now      func() time.Time
	log      zerolog.Logger
}

// New construye el motor.
func New(tx TxRunner, repos repository.Repositories, opts Options) *Shop {
	s := &Shop{
		tx:       tx,
		repos:    repos,
		identity: identity.NewResolver(repos.Users, repos.Clients),
		loginKey: opts.LoginKey,
		now:      opts.Now,
		log:      zerolog.Nop(),
	}
	if s.loginKey == "" {
		s.loginKey = LoginByFirstName
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	return s
}

// authorize aplica el orden fijo de guardas: primero la sesión, después el rol.
// Nunca se consulta el rol de una sesión sin autenticar.
func (s *Shop) authorize(ctx context.Context, sess *session.Session, action access.Action) (int64, error) {
	userID, ok := sess.UserID()
	if !ok {
		return 0, domain.ErrAuthRequired
	}
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := access.Check(role, action); err != nil {
		return 0, err
	}
	return userID, nil
}

// Allowed deja que la interfaz verifique el permiso antes de pedir datos. Cada flujo
// vuelve a verificarlo por su cuenta.
func (s *Shop) Allowed(ctx context.Context, sess *session.Session, action access.Action) error {
	_, err := s.authorize(ctx, sess, action)
	return err
}

// clientID cliente ligado al usuario autenticado.
func (s *Shop) clientID(ctx context.Context, userID int64) (int64, error) {
	id, ok, err := s.identity.ResolveClientID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: el usuario %d no tiene ficha de cliente", domain.ErrNotFound, userID)
	}
	return id, nil
}

// inTx ejecuta fn en una transacción. Los errores que no son de dominio se marcan como
// ErrTransactionFailed; en ambos casos el TxRunner ya hizo Rollback.
func (s *Shop) inTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	err := s.tx.Run(ctx, fn)
	if err == nil || domain.IsKnown(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
}

// report registra el resultado de un flujo.
func (s *Shop) report(sess *session.Session, workflow string, err error) {
	var ev *zerolog.Event
	switch {
	case err == nil:
		ev = s.log.Info()
	case errors.Is(err, domain.ErrTransactionFailed):
		ev = s.log.Error().Err(err)
	case errors.Is(err, domain.ErrPermissionDenied), errors.Is(err, domain.ErrInvalidCredentials):
		ev = s.log.Warn().Err(err)
	default:
		ev = s.log.Debug().Err(err)
	}
	userID, _ := sess.UserID()
	ev.Str("workflow", workflow).
		Str("session_id", sess.ID()).
		Int64("user_id", userID).
		Msg("flujo finalizado")
}

// today fecha actual sin hora, en la zona del reloj.
func (s *Shop) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...)
}

func requireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", invalid("%s no puede estar vacío", field)
	}
	return v, nil
}

func parsePositiveInt(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid("%s debe ser un número entero", field)
	}
	if n <= 0 {
		return 0, invalid("%s debe ser mayor que cero", field)
	}
	return n, nil
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(raw, ",", ".")))
	if err != nil {
		return decimal.Zero, invalid("%s debe ser un número", field)
	}
	return d, nil
}

// single exige exactamente una coincidencia.
func single[T any](items []T, what, key string) (T, error) {
	var zero T
	switch len(items) {
	case 0:
		return zero, fmt.Errorf("%w: %s %q", domain.ErrNotFound, what, key)
	case 1:
		return items[0], nil
	default:
		return zero, fmt.Errorf("%w: %s %q", domain.ErrAmbiguousMatch, what, key)
	}
}
