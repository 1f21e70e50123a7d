package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags of a request DTO.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
