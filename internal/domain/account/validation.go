// Package account contiene las validaciones locales del registro de usuarios.
// Se ejecutan antes de tocar la base de datos.
package account

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kosmp/BD-5-sem/internal/domain"
)

// MinPasswordDigits cantidad mínima de dígitos en una contraseña.
const MinPasswordDigits = 4

// PhoneExample formato esperado del teléfono, usado en mensajes.
const PhoneExample = "+375291111111"

// +375 seguido de exactamente 9 dígitos, sin nada más.
var phonePattern = regexp.MustCompile(`^\+375[0-9]{9}$`)

// IsValidPhone verifica el formato +375XXXXXXXXX.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidPassword verifica que la contraseña tenga al menos MinPasswordDigits dígitos.
func IsValidPassword(password string) bool {
	digits := 0
	for _, r := range password {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= MinPasswordDigits
}

// Registration datos a validar en el alta de un usuario.
type Registration struct {
	FirstName string
	LastName  string
	Phone     string
	Password  string
}

// Validate acumula todos los problemas encontrados. El error resultante envuelve domain.ErrInvalidInput.
func (r Registration) Validate() error {
	var errs []error
	if isBlank(r.FirstName) {
		errs = append(errs, errors.New("el nombre debe tener al menos 1 carácter"))
	}
	if isBlank(r.LastName) {
		errs = append(errs, errors.New("el apellido debe tener al menos 1 carácter"))
	}
	if !IsValidPhone(r.Phone) {
		errs = append(errs, fmt.Errorf("formato de teléfono incorrecto, ejemplo: %s", PhoneExample))
	}
	if !IsValidPassword(r.Password) {
		errs = append(errs, fmt.Errorf("la contraseña debe contener al menos %d dígitos", MinPasswordDigits))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
}

func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
