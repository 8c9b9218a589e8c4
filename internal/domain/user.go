package domain

import "time"

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleStaff    UserRole = "staff"
	UserRoleManager  UserRole = "manager"
)

// ValidUserRole reports whether the role is one of the known roles.
func ValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleCustomer, UserRoleStaff, UserRoleManager:
		return true
	}
	return false
}

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedOn    time.Time `json:"created_on"`
}
