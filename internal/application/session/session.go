// Package session guarda la identidad autenticada de la sesión interactiva.
// El dueño de la sesión es quien llama al motor de flujos; no hay estado global.
package session

import "github.com/google/uuid"

// Session estado de autenticación de un único usuario a la vez.
// No es seguro para uso concurrente: el proceso atiende una sola sesión.
type Session struct {
	id            string
	authenticated bool
	userID        int64
}

// New crea una sesión sin autenticar con un ID de correlación para los logs.
func New() *Session {
	return &Session{id: uuid.NewString()}
}

// ID identificador de correlación de la sesión.
func (s *Session) ID() string { return s.id }

// Login marca la sesión como autenticada para userID.
func (s *Session) Login(userID int64) {
	s.authenticated = true
	s.userID = userID
}

// Logout limpia la identidad. Es idempotente.
func (s *Session) Logout() {
	s.authenticated = false
	s.userID = 0
}

// Authenticated indica si hay un usuario autenticado.
func (s *Session) Authenticated() bool { return s.authenticated }

// UserID devuelve el usuario actual y false si la sesión no está autenticada.
func (s *Session) UserID() (int64, bool) {
	if !s.authenticated {
		return 0, false
	}
	return s.userID, true
}
