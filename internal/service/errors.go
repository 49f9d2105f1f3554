package service

import "errors"

var (
	ErrMissingCoordinates  = errors.New("latitude and longitude are required")
	ErrUpstream            = errors.New("upstream lookup failed")
	ErrCafeNotFound        = errors.New("cafe not found")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidReview       = errors.New("invalid review")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrInactiveUser        = errors.New("user is not active")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSignupDisabled      = errors.New("password sign-up is disabled")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrExpiredRefreshToken = errors.New("refresh token expired")
	ErrInvalidAccessToken  = errors.New("invalid access token")
)
