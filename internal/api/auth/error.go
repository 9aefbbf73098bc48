package auth

import "MeridianBackend/pkg/response"

var (
	ErrUserNotFound           = response.NewError(404, "user not found")
	ErrInvalidEmailOrPassword = response.NewError(400, "invalid email or password")
	ErrSessionExpired         = response.NewError(401, "session expired or revoked")
	ErrLoginFailed            = response.NewError(500, "failed to log in")
)
