package engine

import "errors"

var (
	ErrUnknownEngine     = errors.New("unknown conversion engine")
	ErrEngineUnavailable = errors.New("conversion engine not available")
	ErrInvalidSource     = errors.New("invalid source document")
)
