package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Token records an outstanding refresh token by its JTI so refresh and
// revocation can be checked against the store.
type Token struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       int       `json:"user_id" gorm:"not null;index"`
	JTI          uuid.UUID `json:"jti" gorm:"uniqueIndex;type:uuid"`
	RefreshToken string    `json:"refresh_token" gorm:"type:text"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Token) TableName() string {
	return "tokens"
}
