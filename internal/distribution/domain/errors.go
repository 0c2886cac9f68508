package domain

import "errors"

var (
	ErrCapExceeded    = errors.New("distribution percentages exceed plant capacity")
	ErrInvalidShare   = errors.New("invalid distribution share")
	ErrPlantNotFound  = errors.New("plant not found")
	ErrClientNotFound = errors.New("client not found")
)
