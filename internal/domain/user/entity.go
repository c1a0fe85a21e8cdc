package user

import "time"

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	Role            Role
	EmailVerified   bool
	OAuthProvider   *string
	OAuthProviderID *string
	CompanyName     *string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RolePlanner Role = "planner"
)
