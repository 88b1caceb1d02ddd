package models

import "github.com/google/uuid"

// TournamentPlayer links a player to a tournament. (tournament_id, player_id) is unique.
type TournamentPlayer struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TournamentID uuid.UUID `json:"tournament_id" db:"tournament_id"`
	PlayerID     uuid.UUID `json:"player_id" db:"player_id"`
	Accepted     bool      `json:"accepted" db:"accepted"`
}

// EnrolledPlayer is the projection returned by the enrollment endpoints.
type EnrolledPlayer struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PlayerID    uuid.UUID `json:"player_id" db:"player_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Email       *string   `json:"email" db:"email"`
	Accepted    bool      `json:"accepted" db:"accepted"`
}
