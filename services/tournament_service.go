package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/Dosada05/padel-tournament-api/repositories"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CreateTournamentInput struct {
	Name         string             `json:"name"`
	Location     *string            `json:"location"`
	Visibility   *string            `json:"visibility"`
	Format       *string            `json:"format"`
	IsDoubles    *bool              `json:"is_doubles"`
	ScoringRules *ScoringRulesInput `json:"scoring_rules"`
}

type TournamentService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateTournamentInput) (*models.Tournament, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]models.TournamentSummary, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*models.TournamentDetail, error)
}

type tournamentService struct {
	db             repositories.Beginner
	tournamentRepo repositories.TournamentRepository
	resolver       *ScoringRulesResolver
	recorder       Recorder
	logger         *slog.Logger
}

func NewTournamentService(
	db repositories.Beginner,
	tournamentRepo repositories.TournamentRepository,
	resolver *ScoringRulesResolver,
	recorder Recorder,
	logger *slog.Logger,
) TournamentService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		resolver:       resolver,
		recorder:       recorder,
		logger:         loggerOrDefault(logger),
	}
}

func (s *tournamentService) Create(ctx context.Context, ownerID uuid.UUID, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	tournament := &models.Tournament{
		ID:          uuid.New(),
		OwnerUserID: ownerID,
		Name:        name,
		Location:    stringOrNil(input.Location),
		Visibility:  models.VisibilityPrivate,
		Format:      models.FormatRoundRobin,
		IsDoubles:   true,
		Status:      models.StatusDraft,
		CreatedAt:   time.Now().UTC(),
	}
	if input.Visibility != nil {
		tournament.Visibility = *input.Visibility
	}
	if input.Format != nil {
		tournament.Format = *input.Format
	}
	if input.IsDoubles != nil {
		tournament.IsDoubles = *input.IsDoubles
	}

	err := withTx(ctx, s.db, s.logger, func(tx *sqlx.Tx) error {
		rulesID, err := s.resolver.Create(ctx, tx, input.ScoringRules)
		if err != nil {
			return err
		}
		tournament.ScoringRulesID = rulesID
		return s.tournamentRepo.Create(ctx, tx, tournament)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentReferenceInvalid) {
			// владелец удалён между аутентификацией и записью
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.recorder.TournamentCreated()
	s.logger.Info("tournament created",
		slog.String("tournament_id", tournament.ID.String()),
		slog.String("owner_id", ownerID.String()))

	return tournament, nil
}

func (s *tournamentService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]models.TournamentSummary, error) {
	list, err := s.tournamentRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return list, nil
}

func (s *tournamentService) GetDetail(ctx context.Context, id uuid.UUID) (*models.TournamentDetail, error) {
	detail, err := s.tournamentRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return detail, nil
}
