package errorhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mwork/studiofinder/internal/pkg/logger"
	"github.com/mwork/studiofinder/internal/pkg/response"
)

// HandleError logs err on the request logger (which carries the request and
// session ids) and sends an error envelope.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := logger.FromContext(ctx).Error().
		Str("error_code", code).
		Int("status_code", status)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(message)

	response.Error(w, status, code, message)
}

// HandleErrorWithData is HandleError for failures that still return the
// client's current view.
func HandleErrorWithData(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error, data any) {
	event := logger.FromContext(ctx).Warn().
		Str("error_code", code).
		Int("status_code", status)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(message)

	response.ErrorWithData(w, status, code, message, data)
}

// LogValidationError logs the rejected fields.
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	errJSON, _ := json.Marshal(fieldErrors)
	logger.FromContext(ctx).Warn().
		RawJSON("validation_errors", errJSON).
		Msg("Validation error")
}

// LogExternalServiceError logs a failed call to the catalog or another
// upstream.
func LogExternalServiceError(ctx context.Context, service string, err error) {
	logger.FromContext(ctx).Error().
		Str("external_service", service).
		Err(err).
		Msg("External service error")
}
