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
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerOwnerInvalid = errors.New("player owner conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]models.Player, error)
	UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL *string) error
}

type sqlPlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) PlayerRepository {
	return &sqlPlayerRepository{db: db}
}

const playerColumns = `id, owner_user_id, display_name, email, rating, avatar_url, created_at`

func (r *sqlPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := r.db.Rebind(`
		INSERT INTO players (id, owner_user_id, display_name, email, rating, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.OwnerUserID, p.DisplayName, p.Email, p.Rating, p.AvatarURL, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrPlayerOwnerInvalid
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *sqlPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	var p models.Player
	query := r.db.Rebind(`SELECT ` + playerColumns + ` FROM players WHERE id = ?`)
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

func (r *sqlPlayerRepository) ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]models.Player, error) {
	players := make([]models.Player, 0)
	query := r.db.Rebind(`SELECT ` + playerColumns + ` FROM players WHERE owner_user_id = ? ORDER BY display_name`)
	if err := r.db.SelectContext(ctx, &players, query, ownerUserID); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (r *sqlPlayerRepository) UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL *string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE players SET avatar_url = ? WHERE id = ?`), avatarURL, id)
	if err != nil {
		return fmt.Errorf("failed to update player avatar: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
