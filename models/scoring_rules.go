package models

import "github.com/google/uuid"

const (
	TiebreakLong7        = "long7"
	TiebreakFinalAllowed = "allowed"
)

// ScoringRules is immutable once stored; every tournament gets its own row.
type ScoringRules struct {
	ID               uuid.UUID `json:"id" db:"id"`
	BestOfSets       int       `json:"best_of_sets" db:"best_of_sets"`
	GoldenPoint      bool      `json:"golden_point" db:"golden_point"`
	TiebreakType     string    `json:"tiebreak_type" db:"tiebreak_type"`
	TiebreakFinalSet string    `json:"tiebreak_final_set" db:"tiebreak_final_set"`
	PointsWin        int       `json:"points_win" db:"points_win"`
	PointsLoss       int       `json:"points_loss" db:"points_loss"`
	PointsWalkover   int       `json:"points_walkover" db:"points_walkover"`
	PointsRetired    int       `json:"points_retired" db:"points_retired"`
	SetsDiffWeight   float64   `json:"sets_diff_weight" db:"sets_diff_weight"`
	GamesDiffWeight  float64   `json:"games_diff_weight" db:"games_diff_weight"`
}
