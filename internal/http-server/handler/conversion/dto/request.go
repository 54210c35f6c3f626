package dto

import (
	"errors"

	"pdf2word/internal/domain"

	"github.com/go-playground/validator/v10"
)

// ConvertRequest is checked in two passes: Filename before the payload is
// read, Size once it is in memory.
type ConvertRequest struct {
	Filename string `validate:"required,source_ext"`
	Size     int    `validate:"gt=0,lte=52428800"`
}

func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("source_ext", func(fl validator.FieldLevel) bool {
		return domain.HasSourceExtension(fl.Field().String())
	})
	return v
}

func (r *ConvertRequest) ValidateFilename(v *validator.Validate) error {
	return rejection(v.StructPartial(r, "Filename"))
}

func (r *ConvertRequest) ValidateSize(v *validator.Validate) error {
	return rejection(v.StructPartial(r, "Size"))
}

func rejection(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.StructField() {
	case "Filename":
		if fe.Tag() == "required" {
			return domain.ErrNoFilename
		}
		return domain.ErrUnsupportedType
	case "Size":
		if fe.Tag() == "gt" {
			return domain.ErrEmptyFile
		}
		return domain.ErrFileTooLarge
	}
	return err
}
