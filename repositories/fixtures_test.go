package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/padel-tournament-api/db/dbtest"
	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type fixtures struct {
	t     *testing.T
	db    *sqlx.DB
	faker *gofakeit.Faker

	users       UserRepository
	players     PlayerRepository
	rules       ScoringRulesRepository
	tournaments TournamentRepository
	enrollments EnrollmentRepository
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	conn := dbtest.New(t)
	return &fixtures{
		t:           t,
		db:          conn,
		faker:       gofakeit.New(42),
		users:       NewUserRepository(conn),
		players:     NewPlayerRepository(conn),
		rules:       NewScoringRulesRepository(conn),
		tournaments: NewTournamentRepository(conn),
		enrollments: NewEnrollmentRepository(conn),
	}
}

func (f *fixtures) user() *models.User {
	f.t.Helper()
	u := &models.User{
		ID:           uuid.New(),
		Email:        f.faker.Email(),
		PasswordHash: "hash",
		Name:         f.faker.Name(),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(f.t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixtures) player(owner uuid.UUID, displayName string) *models.Player {
	f.t.Helper()
	email := f.faker.Email()
	p := &models.Player{
		ID:          uuid.New(),
		OwnerUserID: owner,
		DisplayName: displayName,
		Email:       &email,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(f.t, f.players.Create(context.Background(), p))
	return p
}

func (f *fixtures) tournament(owner uuid.UUID, createdAt time.Time) *models.Tournament {
	f.t.Helper()
	ctx := context.Background()

	rules := &models.ScoringRules{
		ID:               uuid.New(),
		BestOfSets:       3,
		GoldenPoint:      false,
		TiebreakType:     models.TiebreakLong7,
		TiebreakFinalSet: models.TiebreakFinalAllowed,
		PointsWin:        3,
		PointsWalkover:   3,
		SetsDiffWeight:   1,
		GamesDiffWeight:  0.1,
	}
	require.NoError(f.t, f.rules.Create(ctx, nil, rules))

	tournament := &models.Tournament{
		ID:             uuid.New(),
		OwnerUserID:    owner,
		Name:           f.faker.City() + " Open",
		Visibility:     models.VisibilityPrivate,
		Format:         models.FormatRoundRobin,
		ScoringRulesID: rules.ID,
		IsDoubles:      true,
		Status:         models.StatusDraft,
		CreatedAt:      createdAt,
	}
	require.NoError(f.t, f.tournaments.Create(ctx, nil, tournament))
	return tournament
}
