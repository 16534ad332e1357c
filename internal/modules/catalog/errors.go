package catalog

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrStationInUse = errors.New("station is referenced by active routes")
	ErrSameStation  = errors.New("origin and destination must differ")
)
