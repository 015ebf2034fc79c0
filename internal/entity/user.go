package entity

import "time"

const (
	RoleIntern     = "intern"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
)

// DbUser represents a persisted account.
//
// SupervisorID is only meaningful for interns; it must stay nil for
// supervisors and admins.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(50);index;not null;default:intern" json:"role"`
	Status       string    `gorm:"column:status;type:varchar(50);index;not null;default:pending" json:"status"`
	SupervisorID *uint     `gorm:"column:supervisor_id;index" json:"supervisor_id,omitempty"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// ValidRole reports whether value is one of the three known roles.
func ValidRole(value string) bool {
	switch value {
	case RoleIntern, RoleSupervisor, RoleAdmin:
		return true
	default:
		return false
	}
}

// UserSummary is the account view returned to clients. The credential hash
// is never part of it.
type UserSummary struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	SupervisorID *uint     `json:"supervisor_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DirectoryEntry is the trimmed listing used by the supervisor and intern
// lookup endpoints.
type DirectoryEntry struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Identity is the minimal "who is calling" view derived from a credential
// check. It carries no credential material.
type Identity struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupResponse struct {
	Success bool        `json:"success"`
	User    UserSummary `json:"user"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Identity  `json:"user"`
}

type ApproveRequest struct {
	UserID       uint   `json:"userId" binding:"required"`
	Role         string `json:"role" binding:"required"`
	SupervisorID *uint  `json:"supervisorId"`
}

type RejectRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

type ApproveResponse struct {
	Success bool        `json:"success"`
	User    UserSummary `json:"user"`
}

// OKResponse is the bare success envelope.
type OKResponse struct {
	Success bool `json:"success"`
}
