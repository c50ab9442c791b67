package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrEmailTaken     = errors.New("email already exists")
	ErrBadCredentials = errors.New("bad credentials")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidDate    = errors.New("invalid date")
)
