package entity

import "time"

// Roles de usuario. El rol viaja en el JWT para que el middleware RBAC
// decida sin consultar la DB.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User usuario de la aplicación. PasswordHash es bcrypt, nunca se expone.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
