package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Details unpacks a binding error into field->failed-rule pairs. Returns nil
// when the error carries no field-level information (malformed JSON etc).
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
