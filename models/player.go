package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is an entry in a user's private address book.
type Player struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerUserID uuid.UUID `json:"owner_user_id" db:"owner_user_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Email       *string   `json:"email" db:"email"`
	Rating      *float64  `json:"rating" db:"rating"`
	AvatarURL   *string   `json:"avatar_url" db:"avatar_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
