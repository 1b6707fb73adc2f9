package services

import "errors"

var (
	// ErrPermissionDenied is returned when a user changes a post they did not write.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
