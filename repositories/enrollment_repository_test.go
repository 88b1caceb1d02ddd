package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func link(tournamentID, playerID uuid.UUID) *models.TournamentPlayer {
	return &models.TournamentPlayer{ID: uuid.New(), TournamentID: tournamentID, PlayerID: playerID}
}

func TestEnrollmentRepository_InsertIsIdempotent(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.user()
	tournament := f.tournament(owner.ID, time.Now().UTC())
	p := f.player(owner.ID, "Lucia")

	inserted, err := f.enrollments.Insert(ctx, nil, link(tournament.ID, p.ID))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = f.enrollments.Insert(ctx, nil, link(tournament.ID, p.ID))
	require.NoError(t, err)
	assert.False(t, inserted)

	list, err := f.enrollments.ListByTournament(ctx, nil, tournament.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].PlayerID)
	assert.Equal(t, "Lucia", list[0].DisplayName)
	assert.False(t, list[0].Accepted)
}

func TestEnrollmentRepository_UnknownPlayer(t *testing.T) {
	f := newFixtures(t)
	owner := f.user()
	tournament := f.tournament(owner.ID, time.Now().UTC())

	_, err := f.enrollments.Insert(context.Background(), nil, link(tournament.ID, uuid.New()))
	assert.ErrorIs(t, err, ErrEnrollmentPlayerInvalid)
}

func TestEnrollmentRepository_RollbackLeavesNoRows(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.user()
	tournament := f.tournament(owner.ID, time.Now().UTC())
	p := f.player(owner.ID, "Mateo")

	tx, err := f.db.BeginTxx(ctx, nil)
	require.NoError(t, err)

	_, err = f.enrollments.Insert(ctx, tx, link(tournament.ID, p.ID))
	require.NoError(t, err)
	_, err = f.enrollments.Insert(ctx, tx, link(tournament.ID, uuid.New()))
	require.ErrorIs(t, err, ErrEnrollmentPlayerInvalid)
	require.NoError(t, tx.Rollback())

	list, err := f.enrollments.ListByTournament(ctx, nil, tournament.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEnrollmentRepository_ListSortedByDisplayName(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.user()
	tournament := f.tournament(owner.ID, time.Now().UTC())

	for _, name := range []string{"Pablo", "Ana", "Marta"} {
		p := f.player(owner.ID, name)
		_, err := f.enrollments.Insert(ctx, nil, link(tournament.ID, p.ID))
		require.NoError(t, err)
	}

	list, err := f.enrollments.ListByTournament(ctx, nil, tournament.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Ana", "Marta", "Pablo"},
		[]string{list[0].DisplayName, list[1].DisplayName, list[2].DisplayName})
}
