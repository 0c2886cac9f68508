package domain

import "errors"

var (
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidAmount  = errors.New("invalid adjustment amount")
)
