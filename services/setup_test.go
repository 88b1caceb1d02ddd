package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/padel-tournament-api/auth"
	"github.com/Dosada05/padel-tournament-api/db/dbtest"
	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/Dosada05/padel-tournament-api/repositories"
	"github.com/Dosada05/padel-tournament-api/storage"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recorderSpy struct {
	mu          sync.Mutex
	tournaments int
	enrolled    int
}

func (r *recorderSpy) TournamentCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tournaments++
}

func (r *recorderSpy) PlayersEnrolled(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enrolled += n
}

type notifierSpy struct {
	mu    sync.Mutex
	calls []notification
}

type notification struct {
	tournamentID uuid.UUID
	players      []models.EnrolledPlayer
}

func (n *notifierSpy) EnrollmentUpdated(tournamentID uuid.UUID, players []models.EnrolledPlayer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notification{tournamentID: tournamentID, players: players})
}

type fakeUploader struct {
	uploaded map[string]string
	deleted  []string
	failWith error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: map[string]string{}}
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	f.uploaded[key] = contentType
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.uploaded, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return storage.PublicURL("https://cdn.example.com", key)
}

var errUploadFailed = errors.New("upload failed")

type testEnv struct {
	db       *sqlx.DB
	tokens   auth.TokenIssuer
	recorder *recorderSpy
	notifier *notifierSpy
	uploader *fakeUploader

	rulesRepo repositories.ScoringRulesRepository

	auth        AuthService
	players     PlayerService
	tournaments TournamentService
	enrollments EnrollmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := dbtest.New(t)

	userRepo := repositories.NewUserRepository(conn)
	playerRepo := repositories.NewPlayerRepository(conn)
	rulesRepo := repositories.NewScoringRulesRepository(conn)
	tournamentRepo := repositories.NewTournamentRepository(conn)
	enrollmentRepo := repositories.NewEnrollmentRepository(conn)

	env := &testEnv{
		db:        conn,
		tokens:    auth.NewTokenIssuer("test-secret", time.Hour),
		recorder:  &recorderSpy{},
		notifier:  &notifierSpy{},
		uploader:  newFakeUploader(),
		rulesRepo: rulesRepo,
	}

	env.auth = NewAuthService(userRepo, auth.NewBcryptHasher(bcrypt.MinCost), env.tokens, nil)
	env.players = NewPlayerService(playerRepo, env.uploader, nil)
	env.tournaments = NewTournamentService(conn, tournamentRepo, NewScoringRulesResolver(rulesRepo), env.recorder, nil)
	env.enrollments = NewEnrollmentService(conn, tournamentRepo, enrollmentRepo, env.notifier, env.recorder, nil)
	return env
}

func (e *testEnv) register(t *testing.T, email string) *models.User {
	t.Helper()
	res, err := e.auth.Register(context.Background(), RegisterInput{Email: email, Password: "secret123", Name: "Test User"})
	require.NoError(t, err)
	return res.User
}

func (e *testEnv) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
