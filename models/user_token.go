package models

import "time"

// UserToken stores hashed one-time tokens (password reset, refresh sessions).
type UserToken struct {
	TokenID    int       `gorm:"primaryKey;column:token_id" json:"token_id"`
	UserID     int       `gorm:"column:user_id;index" json:"user_id"`
	TokenType  string    `gorm:"column:token_type" json:"token_type"`
	Token      string    `gorm:"column:token" json:"-"`
	ExpiresAt  time.Time `gorm:"column:expires_at" json:"expires_at"`
	IsRevoked  bool      `gorm:"column:is_revoked;default:false" json:"is_revoked"`
	DeviceInfo string    `gorm:"column:device_info" json:"device_info,omitempty"`
	IPAddress  string    `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"column:user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserToken) TableName() string {
	return "user_tokens"
}
