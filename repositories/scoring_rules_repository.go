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

var ErrScoringRulesNotFound = errors.New("scoring rules not found")

type ScoringRulesRepository interface {
	Create(ctx context.Context, exec SQLExecutor, rules *models.ScoringRules) error
	GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.ScoringRules, error)
}

type sqlScoringRulesRepository struct {
	db *sqlx.DB
}

func NewScoringRulesRepository(db *sqlx.DB) ScoringRulesRepository {
	return &sqlScoringRulesRepository{db: db}
}

func (r *sqlScoringRulesRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlScoringRulesRepository) Create(ctx context.Context, exec SQLExecutor, rules *models.ScoringRules) error {
	executor := r.getExecutor(exec)
	query := executor.Rebind(`
		INSERT INTO scoring_rules (
			id, best_of_sets, golden_point, tiebreak_type, tiebreak_final_set,
			points_win, points_loss, points_walkover, points_retired,
			sets_diff_weight, games_diff_weight
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := executor.ExecContext(ctx, query,
		rules.ID, rules.BestOfSets, rules.GoldenPoint, rules.TiebreakType, rules.TiebreakFinalSet,
		rules.PointsWin, rules.PointsLoss, rules.PointsWalkover, rules.PointsRetired,
		rules.SetsDiffWeight, rules.GamesDiffWeight,
	)
	if err != nil {
		return fmt.Errorf("failed to create scoring rules: %w", err)
	}
	return nil
}

func (r *sqlScoringRulesRepository) GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.ScoringRules, error) {
	executor := r.getExecutor(exec)
	query := executor.Rebind(`
		SELECT id, best_of_sets, golden_point, tiebreak_type, tiebreak_final_set,
		       points_win, points_loss, points_walkover, points_retired,
		       sets_diff_weight, games_diff_weight
		FROM scoring_rules WHERE id = ?`)

	var rules models.ScoringRules
	if err := sqlx.GetContext(ctx, executor, &rules, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoringRulesNotFound
		}
		return nil, fmt.Errorf("failed to get scoring rules: %w", err)
	}
	return &rules, nil
}
