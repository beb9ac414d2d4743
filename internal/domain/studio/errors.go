package studio

import "errors"

var (
	ErrInvalidRadius  = errors.New("radius must be one of the offered options")
	ErrStudioNotFound = errors.New("studio not found")
	ErrCatalogLoad    = errors.New("failed to load studio catalog")

	ErrGeolocationUnsupported = errors.New("geolocation is not available")
)
