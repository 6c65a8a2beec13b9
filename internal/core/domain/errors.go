package domain

import "errors"

var (
	ErrPolygonNotFound = errors.New("polygon not found")
	ErrTooFewVertices  = errors.New("polygon must have at least 3 vertices")
	ErrNonFinite       = errors.New("coordinate is not a finite number")
	ErrEmptyName       = errors.New("polygon name must not be empty")
)
