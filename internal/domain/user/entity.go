package user

import "time"

type Role string

const (
	RoleOwner   Role = "owner"   // Business owner - full access
	RoleManager Role = "manager" // Can edit payroll, close books
	RoleStaff   Role = "staff"   // Read-only reporting, bill entry
)

type User struct {
	ID              string
	CompanyID       *string
	Email           string
	FullName        string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOwner checks if user is the business owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsManager checks if user is manager or owner
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}
