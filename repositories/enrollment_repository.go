package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrEnrollmentPlayerInvalid is returned when a player or tournament referenced by an
// enrollment row does not exist.
var ErrEnrollmentPlayerInvalid = errors.New("enrollment references an unknown player or tournament")

type EnrollmentRepository interface {
	// Insert adds the link and reports whether a new row was written.
	// An existing (tournament, player) pair is left untouched.
	Insert(ctx context.Context, exec SQLExecutor, link *models.TournamentPlayer) (bool, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID) ([]models.EnrolledPlayer, error)
}

type sqlEnrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) EnrollmentRepository {
	return &sqlEnrollmentRepository{db: db}
}

func (r *sqlEnrollmentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlEnrollmentRepository) Insert(ctx context.Context, exec SQLExecutor, link *models.TournamentPlayer) (bool, error) {
	executor := r.getExecutor(exec)
	query := executor.Rebind(`
		INSERT INTO tournament_players (id, tournament_id, player_id, accepted)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (tournament_id, player_id) DO NOTHING`)

	result, err := executor.ExecContext(ctx, query, link.ID, link.TournamentID, link.PlayerID, link.Accepted)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, ErrEnrollmentPlayerInvalid
		}
		return false, fmt.Errorf("failed to enroll player: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rows > 0, nil
}

func (r *sqlEnrollmentRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID uuid.UUID) ([]models.EnrolledPlayer, error) {
	executor := r.getExecutor(exec)
	query := executor.Rebind(`
		SELECT tp.id, p.id AS player_id, p.display_name, p.email, tp.accepted
		FROM tournament_players tp
		JOIN players p ON p.id = tp.player_id
		WHERE tp.tournament_id = ?
		ORDER BY p.display_name`)

	players := make([]models.EnrolledPlayer, 0)
	if err := sqlx.SelectContext(ctx, executor, &players, query, tournamentID); err != nil {
		return nil, fmt.Errorf("failed to list enrolled players: %w", err)
	}
	return players, nil
}
