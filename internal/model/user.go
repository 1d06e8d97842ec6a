package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the fixed role set. CUSTOMER marks users a sale is recorded
// against; the other three are operators allowed to act on the system.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
)

// ValidRole reports whether r is one of the known role values.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// User represents an account in the system. Operators and customers share
// the table, distinguished by Role.
type User struct {
	BaseModel
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Username    string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Password    string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FirstName   string `gorm:"type:varchar(100);not null" json:"first_name" validate:"required"`
	LastName    string `gorm:"type:varchar(100);not null" json:"last_name" validate:"required"`
	Role        Role   `gorm:"type:varchar(20);not null;default:'STAFF'" json:"role"`
	PhoneNumber string `gorm:"type:varchar(30)" json:"phone_number"`
	Address     string `gorm:"type:varchar(255)" json:"address,omitempty"`
	City        string `gorm:"type:varchar(100)" json:"city,omitempty"`
	State       string `gorm:"type:varchar(100)" json:"state,omitempty"`
	Picture     string `gorm:"type:varchar(500)" json:"picture,omitempty"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsOperator reports whether the user may act on the system (as opposed to
// being a customer record).
func (u *User) IsOperator() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager || u.Role == RoleStaff
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        Role      `json:"role"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Picture     string    `json:"picture,omitempty"`
	IsActive    bool      `json:"is_active"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		Picture:     u.Picture,
		IsActive:    u.IsActive,
	}
}

// Actor is the authenticated identity performing an operation, extracted
// from the bearer token. Ledger entries and audit fields are attributed
// to it.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}
