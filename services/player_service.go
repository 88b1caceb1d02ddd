package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/Dosada05/padel-tournament-api/models"
	"github.com/Dosada05/padel-tournament-api/repositories"
	"github.com/Dosada05/padel-tournament-api/storage"
	"github.com/google/uuid"
)

type CreatePlayerInput struct {
	DisplayName string   `json:"display_name"`
	Email       *string  `json:"email"`
	Rating      *float64 `json:"rating"`
}

type AvatarUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type PlayerService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Player, error)
	Create(ctx context.Context, ownerID uuid.UUID, input CreatePlayerInput) (*models.Player, error)
	UploadAvatar(ctx context.Context, ownerID, playerID uuid.UUID, upload AvatarUpload) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

// NewPlayerService builds the address book service. uploader may be nil, in
// which case avatar uploads fail with ErrUploadsDisabled.
func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader, logger *slog.Logger) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     loggerOrDefault(logger),
	}
}

func (s *playerService) List(ctx context.Context, ownerID uuid.UUID) ([]models.Player, error) {
	players, err := s.playerRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) Create(ctx context.Context, ownerID uuid.UUID, input CreatePlayerInput) (*models.Player, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, ErrDisplayNameRequired
	}

	player := &models.Player{
		ID:          uuid.New(),
		OwnerUserID: ownerID,
		DisplayName: displayName,
		Email:       stringOrNil(input.Email),
		Rating:      input.Rating,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerOwnerInvalid) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) UploadAvatar(ctx context.Context, ownerID, playerID uuid.UUID, upload AvatarUpload) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	if upload.Body == nil {
		return nil, ErrAvatarRequired
	}
	mediaType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return nil, ErrAvatarContentType
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	if player.OwnerUserID != ownerID {
		return nil, ErrNotPlayerOwner
	}

	key := fmt.Sprintf("players/%s/avatar-%s%s", player.ID, uuid.NewString(), strings.ToLower(filepath.Ext(upload.Filename)))
	result, err := s.uploader.Upload(ctx, key, mediaType, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	location := result.Location
	if err := s.playerRepo.UpdateAvatarURL(ctx, player.ID, &location); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up orphaned avatar",
				slog.String("key", key), slog.Any("error", delErr))
		}
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to save avatar url: %w", err)
	}

	player.AvatarURL = &location
	return player, nil
}
