package entity

import "errors"

// Domain errors
var (
	// Upload errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrTooManyFiles     = errors.New("too many files")
	ErrEmptyUploadURL   = errors.New("backend returned an empty upload url")
	ErrUnexpectedStatus = errors.New("unexpected upload status")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
