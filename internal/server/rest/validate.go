package rest

import (
	"github.com/dmitrijs2005/gotodo/internal/validatex"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validatex.New()
	schemaDecoder = newSchemaDecoder()
)

func newSchemaDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func validationError(valErrs validator.ValidationErrors) *Error {
	return &Error{
		Code:    CodeInvalidArgument,
		Message: validatex.Message(valErrs),
		Details: validatex.Details(valErrs),
	}
}
