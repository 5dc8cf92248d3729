package dto

// RegisterRequest datos del alta de un cliente. La contraseña se guarda sin transformar.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Phone     string
	Password  string
	Address   string
}

// LoginRequest credenciales. Login es el nombre o el teléfono según la configuración.
type LoginRequest struct {
	Login    string
	Password string
}
