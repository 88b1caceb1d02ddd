package services

import (
	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/google/uuid"
)

// EnrollmentNotifier is told about every committed enrollment batch.
type EnrollmentNotifier interface {
	EnrollmentUpdated(tournamentID uuid.UUID, players []models.EnrolledPlayer)
}

// Recorder counts domain events for metrics.
type Recorder interface {
	TournamentCreated()
	PlayersEnrolled(n int)
}

type noopRecorder struct{}

func (noopRecorder) TournamentCreated()  {}
func (noopRecorder) PlayersEnrolled(int) {}

type noopNotifier struct{}

func (noopNotifier) EnrollmentUpdated(uuid.UUID, []models.EnrolledPlayer) {}
