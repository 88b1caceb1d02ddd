package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/Dosada05/padel-tournament-api/repositories"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EnrollmentService interface {
	// Enroll adds the players to the tournament in one transaction and
	// returns the full enrolled list. Players already enrolled are skipped.
	Enroll(ctx context.Context, tournamentID, actingUserID uuid.UUID, playerIDs []uuid.UUID) ([]models.EnrolledPlayer, error)
	ListEnrolled(ctx context.Context, tournamentID uuid.UUID) ([]models.EnrolledPlayer, error)
}

type enrollmentService struct {
	db             repositories.Beginner
	tournamentRepo repositories.TournamentRepository
	enrollmentRepo repositories.EnrollmentRepository
	notifier       EnrollmentNotifier
	recorder       Recorder
	logger         *slog.Logger
}

func NewEnrollmentService(
	db repositories.Beginner,
	tournamentRepo repositories.TournamentRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	notifier EnrollmentNotifier,
	recorder Recorder,
	logger *slog.Logger,
) EnrollmentService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &enrollmentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		enrollmentRepo: enrollmentRepo,
		notifier:       notifier,
		recorder:       recorder,
		logger:         loggerOrDefault(logger),
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, tournamentID, actingUserID uuid.UUID, playerIDs []uuid.UUID) ([]models.EnrolledPlayer, error) {
	if len(playerIDs) == 0 {
		return nil, ErrPlayerIDsRequired
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	if tournament.OwnerUserID != actingUserID {
		return nil, ErrNotTournamentOwner
	}

	inserted := 0
	err = withTx(ctx, s.db, s.logger, func(tx *sqlx.Tx) error {
		for _, playerID := range playerIDs {
			ok, err := s.enrollmentRepo.Insert(ctx, tx, &models.TournamentPlayer{
				ID:           uuid.New(),
				TournamentID: tournamentID,
				PlayerID:     playerID,
				Accepted:     true,
			})
			if err != nil {
				return err
			}
			if ok {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrEnrollmentPlayerInvalid) {
			return nil, ErrUnknownPlayer
		}
		return nil, fmt.Errorf("failed to enroll players: %w", err)
	}

	players, err := s.enrollmentRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled players: %w", err)
	}

	s.recorder.PlayersEnrolled(inserted)
	s.notifier.EnrollmentUpdated(tournamentID, players)
	s.logger.Info("players enrolled",
		slog.String("tournament_id", tournamentID.String()),
		slog.Int("requested", len(playerIDs)),
		slog.Int("inserted", inserted))

	return players, nil
}

func (s *enrollmentService) ListEnrolled(ctx context.Context, tournamentID uuid.UUID) ([]models.EnrolledPlayer, error) {
	players, err := s.enrollmentRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled players: %w", err)
	}
	return players, nil
}
