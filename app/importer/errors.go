package importer

import "errors"

var (
	// ErrMalformedInput covers uploads the pipeline cannot even begin to work
	// with: empty files, oversize files, unparseable CSV, header-only files.
	ErrMalformedInput = errors.New("malformed input")

	// ErrSessionNotFound is returned when a confirm references a session id
	// that never existed, expired, or was already consumed.
	ErrSessionNotFound = errors.New("import session not found")

	// ErrValidation is returned when a confirm request's column mapping is
	// unusable, e.g. no name column or a column absent from the file.
	ErrValidation = errors.New("validation failed")
)
