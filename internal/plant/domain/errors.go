package domain

import "errors"

var (
	ErrPlantNotFound = errors.New("plant not found")
	ErrPlantExists   = errors.New("plant already exists")
)
