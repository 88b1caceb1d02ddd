package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrTournamentNotFound         = errors.New("tournament not found")
	ErrTournamentReferenceInvalid = errors.New("tournament owner or scoring rules reference is invalid")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.Tournament, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*models.TournamentDetail, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]models.TournamentSummary, error)
}

type sqlTournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) TournamentRepository {
	return &sqlTournamentRepository{db: db}
}

func (r *sqlTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `t.id, t.owner_user_id, t.name, t.location, t.visibility, t.format,
	t.scoring_rules_id, t.is_doubles, t.status, t.created_at`

func (r *sqlTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := executor.Rebind(`
		INSERT INTO tournaments (
			id, owner_user_id, name, location, visibility, format,
			scoring_rules_id, is_doubles, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := executor.ExecContext(ctx, query,
		t.ID, t.OwnerUserID, t.Name, t.Location, t.Visibility, t.Format,
		t.ScoringRulesID, t.IsDoubles, t.Status, t.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrTournamentReferenceInvalid
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *sqlTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := executor.Rebind(`SELECT ` + tournamentColumns + ` FROM tournaments t WHERE t.id = ?`)

	var t models.Tournament
	if err := sqlx.GetContext(ctx, executor, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return &t, nil
}

func (r *sqlTournamentRepository) GetDetail(ctx context.Context, id uuid.UUID) (*models.TournamentDetail, error) {
	query := r.db.Rebind(`
		SELECT ` + tournamentColumns + `,
		       sr.id                 AS "scoring_rules.id",
		       sr.best_of_sets       AS "scoring_rules.best_of_sets",
		       sr.golden_point       AS "scoring_rules.golden_point",
		       sr.tiebreak_type      AS "scoring_rules.tiebreak_type",
		       sr.tiebreak_final_set AS "scoring_rules.tiebreak_final_set",
		       sr.points_win         AS "scoring_rules.points_win",
		       sr.points_loss        AS "scoring_rules.points_loss",
		       sr.points_walkover    AS "scoring_rules.points_walkover",
		       sr.points_retired     AS "scoring_rules.points_retired",
		       sr.sets_diff_weight   AS "scoring_rules.sets_diff_weight",
		       sr.games_diff_weight  AS "scoring_rules.games_diff_weight"
		FROM tournaments t
		JOIN scoring_rules sr ON sr.id = t.scoring_rules_id
		WHERE t.id = ?`)

	var detail models.TournamentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament detail: %w", err)
	}
	return &detail, nil
}

func (r *sqlTournamentRepository) ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]models.TournamentSummary, error) {
	query := r.db.Rebind(`
		SELECT ` + tournamentColumns + `, sr.golden_point, sr.tiebreak_type
		FROM tournaments t
		JOIN scoring_rules sr ON sr.id = t.scoring_rules_id
		WHERE t.owner_user_id = ?
		ORDER BY t.created_at DESC`)

	summaries := make([]models.TournamentSummary, 0)
	if err := r.db.SelectContext(ctx, &summaries, query, ownerUserID); err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return summaries, nil
}
