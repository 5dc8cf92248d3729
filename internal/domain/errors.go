package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrPermissionDenied   = errors.New("acceso denegado")
	ErrAuthRequired       = fmt.Errorf("%w: debe iniciar sesión", ErrPermissionDenied)
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrAmbiguousMatch     = errors.New("el nombre coincide con más de un registro")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrTransactionFailed  = errors.New("la transacción falló")
)

// IsKnown indica si err ya pertenece a la taxonomía de dominio.
func IsKnown(err error) bool {
	for _, k := range []error{
		ErrPermissionDenied, ErrInvalidCredentials, ErrInvalidInput, ErrNotFound,
		ErrAmbiguousMatch, ErrDuplicate, ErrConflict, ErrTransactionFailed,
	} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}
