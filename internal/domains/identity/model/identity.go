package model

import "strings"

type Role string

const (
	RoleCustomer Role = "Cliente"
	RoleAdmin    Role = "Administrador"
	RoleSeller   Role = "Vendedor"
)

// Identity is the signed-in user as seen by the storefront.
// A nil *Identity means no one is signed in (guest).
type Identity struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	LastName string `json:"apellidos"`
	Email    string `json:"correo"`
	Role     Role   `json:"tipo"`
}

// SameUser reports whether a and b refer to the same account; two guests are
// the same
func SameUser(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}

func (i *Identity) FullName() string {
	if i == nil {
		return ""
	}
	return strings.TrimSpace(i.Name + " " + i.LastName)
}

// CanSeeAllOrders reports whether the role may browse every customer's orders
func (i *Identity) CanSeeAllOrders() bool {
	return i != nil && (i.Role == RoleAdmin || i.Role == RoleSeller)
}

// Clone returns a copy safe to hand to other goroutines
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// User is a stored account record
type User struct {
	Identity
	PasswordHash string `json:"password_hash"`
}
