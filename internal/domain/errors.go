package domain

import "errors"

// Upload rejections. The messages are returned to clients as is.
var (
	ErrNoFilename      = errors.New("No filename provided")
	ErrUnsupportedType = errors.New("Only PDF files are allowed")
	ErrEmptyFile       = errors.New("Empty file")
	ErrFileTooLarge    = errors.New("File too large. Max 50MB allowed")
)
