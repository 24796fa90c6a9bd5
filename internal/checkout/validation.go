package checkout

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var bdPhonePattern = regexp.MustCompile(`^01\d{9}$`)

// IsBDPhone reports whether s is an 11-digit Bangladeshi mobile number.
func IsBDPhone(s string) bool {
	return bdPhonePattern.MatchString(s)
}

// PhoneTag is the validate tag for Bangladeshi mobile numbers.
const PhoneTag = "bdphone"

// PhoneMessage describes a failed PhoneTag check.
const PhoneMessage = "Invalid Bangladesh phone number"

// ValidatePhone is the validator.Func behind PhoneTag.
func ValidatePhone(fl validator.FieldLevel) bool {
	return IsBDPhone(fl.Field().String())
}

// RegisterValidations adds PhoneTag to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(PhoneTag, ValidatePhone)
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}
