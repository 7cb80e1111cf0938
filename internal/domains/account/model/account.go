package model

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user of the registry. Accounts are created once
// and never mutated or deleted; username and email are immutable and
// globally unique.
type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	DisplayName  string    `json:"name" db:"display_name"`
	AvatarURL    string    `json:"avatar_url" db:"avatar_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AccountDTO is the public shape returned to clients. It never carries the
// password hash.
type AccountDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Account) ToDTO() AccountDTO {
	return AccountDTO{
		ID:        a.ID.String(),
		Username:  a.Username,
		Email:     a.Email,
		Name:      a.DisplayName,
		AvatarURL: a.AvatarURL,
		CreatedAt: a.CreatedAt,
	}
}
