package geo

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode mirrors the geolocation failure categories a device reports.
type ErrorCode int

const (
	CodeUnknown             ErrorCode = 0
	CodePermissionDenied    ErrorCode = 1
	CodePositionUnavailable ErrorCode = 2
	CodeTimeout             ErrorCode = 3
)

func (c ErrorCode) String() string {
	switch c {
	case CodePermissionDenied:
		return "permission_denied"
	case CodePositionUnavailable:
		return "position_unavailable"
	case CodeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// ParseErrorCode maps the wire names (and numeric device codes) to a code.
func ParseErrorCode(s string) ErrorCode {
	switch s {
	case "permission_denied", "1":
		return CodePermissionDenied
	case "position_unavailable", "2":
		return CodePositionUnavailable
	case "timeout", "3":
		return CodeTimeout
	default:
		return CodeUnknown
	}
}

// LocationError is a categorised geolocation failure.
type LocationError struct {
	Code ErrorCode
	Err  error
}

func (e *LocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation %s: %v", e.Code, e.Err)
	}
	return "geolocation " + e.Code.String()
}

func (e *LocationError) Unwrap() error { return e.Err }

// CodeOf classifies any error returned by a Locator. Context deadlines count
// as timeouts; anything uncategorised is CodeUnknown.
func CodeOf(err error) ErrorCode {
	var locErr *LocationError
	if errors.As(err, &locErr) {
		return locErr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	return CodeUnknown
}

// Locator answers a single-shot request for the caller's current position.
// Implementations may block; they must honour ctx.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Position, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context) (Position, error) {
	return f(ctx)
}

// Static returns a Locator that always reports p.
func Static(p Position) Locator {
	return LocatorFunc(func(ctx context.Context) (Position, error) {
		if err := ctx.Err(); err != nil {
			return Position{}, err
		}
		return p, nil
	})
}

// Failing returns a Locator that always fails with the given category.
func Failing(code ErrorCode) Locator {
	return LocatorFunc(func(ctx context.Context) (Position, error) {
		return Position{}, &LocationError{Code: code}
	})
}
