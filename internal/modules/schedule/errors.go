package schedule

import "errors"

var (
	ErrNotFound      = errors.New("schedule not found")
	ErrTrainNotFound = errors.New("train not found")
	ErrRouteNotFound = errors.New("route not found")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("schedule conflicts with an adjacent schedule")
)
