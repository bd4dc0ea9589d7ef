package apperrors

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrWindowExpired      = errors.New("edit window expired")
	ErrInviteInvalid      = errors.New("invite code invalid")
	ErrInviteExpired      = errors.New("invite code expired")
	ErrBackendUnavailable = errors.New("backend unavailable")
)
