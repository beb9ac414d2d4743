package studio

import (
	"fmt"

	"github.com/mwork/studiofinder/internal/pkg/geo"
)

const (
	msgGeolocationUnsupported = "Geolocation is not supported by your browser."
	msgPermissionDenied       = "Location access denied by user."
	msgPositionUnavailable    = "Location information is unavailable."
	msgLocationTimeout        = "Location request timed out."
	msgLocationUnknown        = "An unknown error occurred."
)

func locationErrorMessage(code geo.ErrorCode) string {
	switch code {
	case geo.CodePermissionDenied:
		return msgPermissionDenied
	case geo.CodePositionUnavailable:
		return msgPositionUnavailable
	case geo.CodeTimeout:
		return msgLocationTimeout
	default:
		return msgLocationUnknown
	}
}

func noStudiosWithinMessage(radiusKm int) string {
	return fmt.Sprintf("No studios found within %d km radius.", radiusKm)
}
