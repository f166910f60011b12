package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleMaintainer UserRole = "maintainer"
	RoleUser       UserRole = "user"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleMaintainer, RoleUser:
		return true
	}
	return false
}

// CanMaintainCatalog reports whether the role may create and delete
// defense and counter teams.
func (r UserRole) CanMaintainCatalog() bool {
	return r == RoleAdmin || r == RoleMaintainer
}

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserFilter struct {
	Search string
	Role   *string
	Page   int
	Limit  int
}

type UserListResponse struct {
	Users      []User `json:"users"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}
