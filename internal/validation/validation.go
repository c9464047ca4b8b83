package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Check runs struct-tag validation and returns one message per failed field,
// or nil when the struct is valid.
func Check(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errs := make(map[string]string)
	for _, ve := range validationErrors {
		errs[ve.Field()] = ve.Tag()
	}
	return errs
}
