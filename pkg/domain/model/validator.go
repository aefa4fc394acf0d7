package model

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so that errors match the wire payload
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CaseInput is the payload accepted for creating and updating a case
type CaseInput struct {
	Summary     string `json:"summary" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	CustomerID  int64  `json:"customer_id" validate:"required,min=1"`
}

// Validate checks the case payload constraints
func (x CaseInput) Validate() error {
	return validateStruct(x, "invalid support case data")
}

// MessageInput is the payload accepted for adding a message to a case
type MessageInput struct {
	Content string `json:"content" validate:"required"`
}

// Validate checks the message payload constraints
func (x MessageInput) Validate() error {
	return validateStruct(x, "invalid message data")
}

func validateStruct(v any, msg string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return goerr.Wrap(err, msg)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	return goerr.Wrap(ErrInvalidPayload, msg, goerr.V(FieldKey, strings.Join(fields, ",")))
}
