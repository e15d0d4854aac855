package repositories

import "errors"

// Sentinel errors returned by the repository layer. Handlers match these
// with errors.Is to pick the HTTP status.
var (
	ErrInvalidID         = errors.New("invalid object ID format")
	ErrCampsiteNotFound  = errors.New("campsite not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrFavoriteNotFound  = errors.New("favorite not found")
)
