package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentService_CreateWithDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com")

	tournament, err := env.tournaments.Create(ctx, owner.ID, CreateTournamentInput{Name: "Spring Cup"})
	require.NoError(t, err)

	assert.Equal(t, "Spring Cup", tournament.Name)
	assert.Equal(t, owner.ID, tournament.OwnerUserID)
	assert.Equal(t, models.StatusDraft, tournament.Status)
	assert.Equal(t, models.VisibilityPrivate, tournament.Visibility)
	assert.Equal(t, models.FormatRoundRobin, tournament.Format)
	assert.True(t, tournament.IsDoubles)
	assert.Nil(t, tournament.Location)

	detail, err := env.tournaments.GetDetail(ctx, tournament.ID)
	require.NoError(t, err)
	want := DefaultScoringRules()
	want.ID = tournament.ScoringRulesID
	assert.Equal(t, want, detail.ScoringRules)

	assert.Equal(t, 1, env.recorder.tournaments)
}

func TestTournamentService_CreateWithPartialRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com")

	var input CreateTournamentInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Golden",
		"location": "Madrid",
		"is_doubles": false,
		"scoring_rules": {"golden_point": 1}
	}`), &input))

	tournament, err := env.tournaments.Create(ctx, owner.ID, input)
	require.NoError(t, err)
	require.NotNil(t, tournament.Location)
	assert.Equal(t, "Madrid", *tournament.Location)
	assert.False(t, tournament.IsDoubles)

	detail, err := env.tournaments.GetDetail(ctx, tournament.ID)
	require.NoError(t, err)
	want := DefaultScoringRules()
	want.ID = tournament.ScoringRulesID
	want.GoldenPoint = true
	assert.Equal(t, want, detail.ScoringRules)
}

func TestTournamentService_CreateRequiresName(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")

	for _, name := range []string{"", "   "} {
		_, err := env.tournaments.Create(context.Background(), owner.ID, CreateTournamentInput{Name: name})
		assert.ErrorIs(t, err, ErrTournamentNameRequired)
	}

	assert.Zero(t, env.countRows(t, "scoring_rules"))
	assert.Zero(t, env.countRows(t, "tournaments"))
	assert.Zero(t, env.recorder.tournaments)
}

func TestTournamentService_CreateRollsBackRulesOnFailure(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tournaments.Create(context.Background(), uuid.New(), CreateTournamentInput{Name: "Orphan"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.Zero(t, env.countRows(t, "scoring_rules"))
	assert.Zero(t, env.countRows(t, "tournaments"))
}

func TestTournamentService_ListMineAndDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")

	mine, err := env.tournaments.Create(ctx, owner.ID, CreateTournamentInput{Name: "Mine"})
	require.NoError(t, err)
	_, err = env.tournaments.Create(ctx, other.ID, CreateTournamentInput{Name: "Theirs"})
	require.NoError(t, err)

	list, err := env.tournaments.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
	assert.Equal(t, models.TiebreakLong7, list[0].TiebreakType)

	_, err = env.tournaments.GetDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
