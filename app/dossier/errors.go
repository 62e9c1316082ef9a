package dossier

import "errors"

// ErrSourceUnavailable covers every article source failure mode: unreachable,
// timed out, rate-limited, or malformed response. Adapters wrap their transport
// errors with it so callers can treat the condition as retryable.
var ErrSourceUnavailable = errors.New("article source unavailable")

// ErrInvalidName is returned for empty or whitespace-only reporter names.
var ErrInvalidName = errors.New("invalid reporter name")
