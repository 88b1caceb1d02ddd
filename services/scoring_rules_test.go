package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`-0.0`, false},
		{`2.5`, true},
		{`""`, false},
		{`"no"`, true},
		{`"false"`, true},
		{`{}`, true},
		{`[]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v Truthy
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))
			assert.Equal(t, tt.want, bool(v))
		})
	}
}

func TestResolveScoringRules_Defaults(t *testing.T) {
	want := models.ScoringRules{
		BestOfSets:       3,
		GoldenPoint:      false,
		TiebreakType:     "long7",
		TiebreakFinalSet: "allowed",
		PointsWin:        2,
		PointsLoss:       0,
		PointsWalkover:   0,
		PointsRetired:    0,
		SetsDiffWeight:   1,
		GamesDiffWeight:  1,
	}

	assert.Equal(t, want, ResolveScoringRules(nil))
	assert.Equal(t, want, ResolveScoringRules(&ScoringRulesInput{}))
}

func TestResolveScoringRules_PartialOverride(t *testing.T) {
	var in ScoringRulesInput
	require.NoError(t, json.Unmarshal([]byte(`{"golden_point": 1, "tiebreak_type": null}`), &in))

	got := ResolveScoringRules(&in)

	want := DefaultScoringRules()
	want.GoldenPoint = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved rules mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveScoringRules_KeepsUnvalidatedValues(t *testing.T) {
	var in ScoringRulesInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"best_of_sets": 7, "tiebreak_type": "super10", "tiebreak_final_set": "never",
		"points_win": 5, "points_loss": -1, "points_walkover": 4, "points_retired": 1,
		"sets_diff_weight": 0.5, "games_diff_weight": 0
	}`), &in))

	got := ResolveScoringRules(&in)
	assert.Equal(t, 7, got.BestOfSets)
	assert.Equal(t, "super10", got.TiebreakType)
	assert.Equal(t, "never", got.TiebreakFinalSet)
	assert.Equal(t, -1, got.PointsLoss)
	assert.InDelta(t, 0.5, got.SetsDiffWeight, 1e-9)
	assert.Zero(t, got.GamesDiffWeight)
}

func TestScoringRulesResolver_CreateInsertsOneRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resolver := NewScoringRulesResolver(env.rulesRepo)

	id, err := resolver.Create(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, env.countRows(t, "scoring_rules"))

	stored, err := env.rulesRepo.GetByID(ctx, nil, id)
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultScoringRules(), *stored, cmpopts.IgnoreFields(models.ScoringRules{}, "ID")); diff != "" {
		t.Errorf("stored rules mismatch (-want +got):\n%s", diff)
	}
}
