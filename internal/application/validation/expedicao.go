package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sangkips/expedicao-api/internal/domain/entity"
	"github.com/sangkips/expedicao-api/pkg/apperror"
)

// Validator checks an order is complete before it is sent to the WMS
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the order specific tags registered
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("branch", func(fl validator.FieldLevel) bool {
		return entity.IsBranch(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateExpedicao returns an apperror validation error listing every problem
// found on the order, or nil when it can be submitted.
func (v *Validator) ValidateExpedicao(e *entity.Expedicao) error {
	if e == nil {
		return fmt.Errorf("order is nil")
	}

	err := v.validate.Struct(e)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return invalid
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fieldName(fe),
			Message: fieldError(fe),
		})
	}
	appErr := apperror.NewValidationError(fields)
	appErr.Message = summary(fields)
	return appErr
}

// fieldName strips the root type from the namespace, so the name matches the
// dotted form names: "Destinatario.UF", "Itens[0].Codigo".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func summary(fields []apperror.FieldError) string {
	var b strings.Builder
	b.WriteString("order validation failed: ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Message)
	}
	return b.String()
}

func fieldError(fe validator.FieldError) string {
	name := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "branch":
		return fmt.Sprintf("%s must be one of the registered branches", name)
	case "alpha":
		return fmt.Sprintf("%s must contain alphabetic characters only", name)
	case "numeric":
		return fmt.Sprintf("%s must be a number", name)
	case "datetime":
		return fmt.Sprintf("%s must be a date in the %s format", name, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s items", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s validation", name, fe.Tag())
	}
}
