package service

import (
	"errors"

	repository "github.com/okian/roster/internal/adapters/repository"
)

// Sentinel error kinds returned by the Service.
var (
	ErrNotStarted = errors.New("service not started")
	ErrNotFound   = repository.ErrNotFound
)
