package entity

import (
	"time"

	"github.com/google/uuid"
)

// OAuthState is one outstanding authorization-code round trip. Rows expire
// and are cleaned up opportunistically.
type OAuthState struct {
	ID        uuid.UUID `db:"id" json:"id"`
	State     string    `db:"state" json:"state"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (OAuthState) TableName() string {
	return "oauth_states"
}
