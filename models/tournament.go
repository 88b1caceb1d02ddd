package models

import (
	"time"

	"github.com/google/uuid"
)

// TournamentStatus представляет статусы турнира.
type TournamentStatus string

const (
	StatusDraft TournamentStatus = "draft"
)

const (
	VisibilityPrivate = "private"
	FormatRoundRobin  = "round_robin"
)

type Tournament struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	OwnerUserID    uuid.UUID        `json:"owner_user_id" db:"owner_user_id"`
	Name           string           `json:"name" db:"name"`
	Location       *string          `json:"location" db:"location"`
	Visibility     string           `json:"visibility" db:"visibility"`
	Format         string           `json:"format" db:"format"`
	ScoringRulesID uuid.UUID        `json:"scoring_rules_id" db:"scoring_rules_id"`
	IsDoubles      bool             `json:"is_doubles" db:"is_doubles"`
	Status         TournamentStatus `json:"status" db:"status"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}

// TournamentSummary is a row of the "my tournaments" listing.
type TournamentSummary struct {
	Tournament
	GoldenPoint  bool   `json:"golden_point" db:"golden_point"`
	TiebreakType string `json:"tiebreak_type" db:"tiebreak_type"`
}

// TournamentDetail is a tournament together with its full scoring rules.
type TournamentDetail struct {
	Tournament
	ScoringRules ScoringRules `json:"scoring_rules" db:"scoring_rules"`
}
