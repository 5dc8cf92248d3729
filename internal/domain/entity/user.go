package entity

// Role rol cerrado de un User. En la base se guarda como Role_Id (1, 2, 3); se convierte
// inmediatamente después de leer.
type Role int

const (
	RoleUnknown  Role = 0
	RoleAdmin    Role = 1
	RoleClient   Role = 2
	RoleEmployee Role = 3
)

// RoleFromID convierte el Role_Id almacenado. Cualquier otro valor es RoleUnknown.
func RoleFromID(id int) Role {
	switch Role(id) {
	case RoleAdmin, RoleClient, RoleEmployee:
		return Role(id)
	default:
		return RoleUnknown
	}
}

// ID devuelve el Role_Id que se persiste.
func (r Role) ID() int { return int(r) }

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleClient:
		return "client"
	case RoleEmployee:
		return "employee"
	default:
		return "unknown"
	}
}

// User representa una identidad del sistema. Phone es el identificador único de contacto.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     string
	Password  string // credencial opaca, se guarda tal cual
	Role      Role
}

// FullName nombre y apellido separados por espacio.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Client datos de cliente ligados 1:1 a un User con RoleClient.
type Client struct {
	ID      int64
	UserID  int64
	Address string
}
