package apperr

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"
)

// IsRetryable determines whether an error is worth retrying on a later
// tick. Returns (isRetryable, errorType).
func IsRetryable(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	// JSON decode errors: the payload is malformed, retrying cannot help.
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return false, "json_decode_error"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return false, "json_decode_error"
	}

	// Authentication and validation failures are user-correctable, not
	// transient.
	if IsAuthentication(err) || IsValidation(err) {
		return false, "client_error"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true, "network_timeout"
		}
		return true, "network_error"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true, "network_timeout"
		}
		return true, "network_error"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true, "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return false, "context_canceled"
	}

	var nwErr *NetworkError
	if errors.As(err, &nwErr) {
		return true, "backend_error"
	}

	// Unknown errors are handled conservatively: no retry.
	return false, "unknown_error"
}
