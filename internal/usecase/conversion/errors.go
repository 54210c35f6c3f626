package conversion

import (
	"errors"
	"fmt"

	"pdf2word/internal/domain"
)

var ErrOutputNotProduced = errors.New("Conversion failed - output file not created")

// ConversionError carries the client-visible detail of a failed conversion.
type ConversionError struct {
	State  domain.ConversionState
	Detail string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion %s: %v", e.State, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
