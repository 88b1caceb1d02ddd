package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/Dosada05/padel-tournament-api/repositories"
	"github.com/google/uuid"
)

// Truthy decodes any JSON value into a bool: false, 0, "" and null are false,
// everything else is true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*t = false
	case bytes.Equal(data, []byte("true")):
		*t = true
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = s != ""
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid number %s: %w", data, err)
		}
		*t = f != 0
	default:
		// objects and arrays
		*t = true
	}
	return nil
}

// ScoringRulesInput carries the optional client overrides. A nil field means
// "use the default".
type ScoringRulesInput struct {
	BestOfSets       *int     `json:"best_of_sets"`
	GoldenPoint      *Truthy  `json:"golden_point"`
	TiebreakType     *string  `json:"tiebreak_type"`
	TiebreakFinalSet *string  `json:"tiebreak_final_set"`
	PointsWin        *int     `json:"points_win"`
	PointsLoss       *int     `json:"points_loss"`
	PointsWalkover   *int     `json:"points_walkover"`
	PointsRetired    *int     `json:"points_retired"`
	SetsDiffWeight   *float64 `json:"sets_diff_weight"`
	GamesDiffWeight  *float64 `json:"games_diff_weight"`
}

func DefaultScoringRules() models.ScoringRules {
	return models.ScoringRules{
		BestOfSets:       3,
		GoldenPoint:      false,
		TiebreakType:     models.TiebreakLong7,
		TiebreakFinalSet: models.TiebreakFinalAllowed,
		PointsWin:        2,
		PointsLoss:       0,
		PointsWalkover:   0,
		PointsRetired:    0,
		SetsDiffWeight:   1,
		GamesDiffWeight:  1,
	}
}

// ResolveScoringRules fills every field the input leaves out with its default.
// Values that are present are kept as given.
func ResolveScoringRules(in *ScoringRulesInput) models.ScoringRules {
	rules := DefaultScoringRules()
	if in == nil {
		return rules
	}

	if in.BestOfSets != nil {
		rules.BestOfSets = *in.BestOfSets
	}
	if in.GoldenPoint != nil {
		rules.GoldenPoint = bool(*in.GoldenPoint)
	}
	if in.TiebreakType != nil {
		rules.TiebreakType = *in.TiebreakType
	}
	if in.TiebreakFinalSet != nil {
		rules.TiebreakFinalSet = *in.TiebreakFinalSet
	}
	if in.PointsWin != nil {
		rules.PointsWin = *in.PointsWin
	}
	if in.PointsLoss != nil {
		rules.PointsLoss = *in.PointsLoss
	}
	if in.PointsWalkover != nil {
		rules.PointsWalkover = *in.PointsWalkover
	}
	if in.PointsRetired != nil {
		rules.PointsRetired = *in.PointsRetired
	}
	if in.SetsDiffWeight != nil {
		rules.SetsDiffWeight = *in.SetsDiffWeight
	}
	if in.GamesDiffWeight != nil {
		rules.GamesDiffWeight = *in.GamesDiffWeight
	}
	return rules
}

// ScoringRulesResolver persists a resolved rule set. Rows are never updated.
type ScoringRulesResolver struct {
	repo repositories.ScoringRulesRepository
}

func NewScoringRulesResolver(repo repositories.ScoringRulesRepository) *ScoringRulesResolver {
	return &ScoringRulesResolver{repo: repo}
}

// Create inserts exactly one scoring_rules row and returns its id. Pass a
// transaction as exec to make the insert part of a larger unit of work.
func (r *ScoringRulesResolver) Create(ctx context.Context, exec repositories.SQLExecutor, in *ScoringRulesInput) (uuid.UUID, error) {
	rules := ResolveScoringRules(in)
	rules.ID = uuid.New()

	if err := r.repo.Create(ctx, exec, &rules); err != nil {
		return uuid.Nil, err
	}
	return rules.ID, nil
}
