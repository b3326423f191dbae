package models

import "fmt"

// Role is the closed set of account roles. Every policy decision switches
// exhaustively over these values.
type Role string

const (
	RoleStudent     Role = "Student"
	RoleStaff       Role = "Staff"
	RoleMaintenance Role = "Maintenance"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleStaff, RoleMaintenance:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleMaintenance:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Identity is the resolved (user, role) pair carried into every service
// call. It is produced by the auth middleware and never re-verified below
// the transport layer.
type Identity struct {
	UserID int
	Role   Role
}
