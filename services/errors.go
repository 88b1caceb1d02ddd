package services

import "errors"

var (
	// Ошибки валидации (400)
	ErrRegisterFieldsRequired = errors.New("email, password and name are required")
	ErrLoginFieldsRequired    = errors.New("email and password are required")
	ErrDisplayNameRequired    = errors.New("display_name is required")
	ErrTournamentNameRequired = errors.New("name is required")
	ErrPlayerIDsRequired      = errors.New("player_ids (array) is required")
	ErrUnknownPlayer          = errors.New("player_ids contains an unknown player")
	ErrAvatarRequired         = errors.New("avatar file is required")
	ErrAvatarContentType      = errors.New("avatar must be an image")

	// Аутентификация (401)
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Доступ (403)
	ErrNotTournamentOwner = errors.New("you are not the organizer of this tournament")
	ErrNotPlayerOwner     = errors.New("you do not own this player")

	// Не найдено (404)
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrUserNotFound       = errors.New("user not found")

	// Конфликты (409)
	ErrEmailTaken = errors.New("email already registered")

	// Хранилище файлов не настроено (503)
	ErrUploadsDisabled = errors.New("file uploads are not configured")
)
