package client

import "errors"

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrRejected              = errors.New("rejected by server")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)
