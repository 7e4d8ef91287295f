package entity

import "time"

// Role rol de un usuario. Solo un administrador lo cambia, a través del registro del usuario.
type Role string

// Roles válidos para User.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
	RoleStaff   Role = "staff"
)

// Roles devuelve los roles conocidos en orden de privilegio.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleCashier, RoleStaff}
}

// Valid informa si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier, RoleStaff:
		return true
	}
	return false
}

// User representa un usuario (dueño de sus filas de negocio).
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"` // bcrypt hash, nunca plano en dominio después de persistir
	Name         string    `db:"name"`
	Phone        string    `db:"phone"`
	Role         Role      `db:"role"`
	Status       string    `db:"status"` // active, inactive, suspended
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
