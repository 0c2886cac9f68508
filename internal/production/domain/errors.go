package domain

import "errors"

var (
	ErrProductionNotFound = errors.New("production not found")
	ErrPlantNotFound      = errors.New("plant not found")
)
