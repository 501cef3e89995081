package models

import (
	"time"
)

// Role IDs are fixed at provisioning time; routes reference these constants
// instead of raw integers.
const (
	RoleAdmin       = 1
	RoleCoordinador = 2
	RoleAuxiliar    = 3
	RoleUsuario     = 4
)

type User struct {
	UserID   int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Nombre   string     `gorm:"column:nombre" json:"nombre"`
	Email    string     `gorm:"column:email;unique" json:"email"`
	Password string     `gorm:"column:password" json:"-"`
	RoleID   int        `gorm:"column:role_id" json:"role_id"`
	IsActive bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

// IsValidRoleID reports whether id is one of the provisioned roles.
func IsValidRoleID(id int) bool {
	switch id {
	case RoleAdmin, RoleCoordinador, RoleAuxiliar, RoleUsuario:
		return true
	}
	return false
}
