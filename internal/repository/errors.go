package repository

import "errors"

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrProfileNotFound = errors.New("user profile not found")
)
