package model

import (
	"time"
)

// RefreshToken is one issued refresh token. Tokens are rotated on every
// refresh and revoked on logout; the scheduler purges dead rows.
type RefreshToken struct {
	TokenID   uint      `gorm:"column:token_id;primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Token     string    `gorm:"column:token;type:varchar(255);not null;uniqueIndex" json:"-"`
	Revoked   bool      `gorm:"column:revoked;not null;default:false" json:"revoked"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
