package models

import "time"

// Role distinguishes customers from vendors.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
)

// User mirrors an identity-provider account. Rows are only ever upserted.
type User struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Email           *string   `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	FirstName       string    `json:"firstName" gorm:"type:varchar(255)"`
	LastName        string    `json:"lastName" gorm:"type:varchar(255)"`
	ProfileImageURL string    `json:"profileImageUrl" gorm:"type:varchar(2048)"`
	Role            Role      `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Caller is the authenticated identity a request acts on behalf of.
type Caller struct {
	ID   string
	Role Role
}

func (c Caller) IsVendor() bool {
	return c.Role == RoleVendor
}

// UpdateUserRequest lists the profile fields a user may change. The role
// only comes from the identity provider at login.
type UpdateUserRequest struct {
	FirstName       *string `json:"firstName" validate:"omitempty,max=255"`
	LastName        *string `json:"lastName" validate:"omitempty,max=255"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,max=2048"`
}
