package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not available in this build.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates no extractor handles the input.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidBackup indicates a backup file could not be parsed.
	// The library is left unchanged when this is returned.
	ErrInvalidBackup = errors.New("invalid backup file")

	// ErrArchiveTooLarge indicates an archive exceeds the configured size limit.
	ErrArchiveTooLarge = errors.New("archive too large")

	// ErrOCRUnavailable indicates no OCR engine is configured or it failed to start.
	ErrOCRUnavailable = errors.New("OCR engine unavailable")

	// ErrLanguageUnavailable indicates the OCR engine lacks the requested language.
	ErrLanguageUnavailable = errors.New("OCR language unavailable")

	// ErrSpeechUnavailable indicates the platform has no text-to-speech capability.
	ErrSpeechUnavailable = errors.New("speech output unavailable")
)
