package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	validators "github.com/go-playground/validator/v10"
)

// Validator interface
type Validator interface {
	ValidateStruct(inf interface{}) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	v := validators.New()
	_ = v.RegisterValidation("digits", validateDigits)
	_ = v.RegisterValidation("expiry", validateExpiry)
	return &validator{
		validator: v,
	}
}

// ValidateStruct func
func (v *validator) ValidateStruct(inf interface{}) error {

	return v.validator.Struct(inf)
}

// Messages flattens a validation error into one message per failed field
func Messages(err error) []string {
	var verrs validators.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return messages
}

// StripSpaces removes blanks and dashes typed inside card numbers
func StripSpaces(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}

// validateDigits accepts a string of ASCII digits whose length is in the "min-max" (or exact "n") param
func validateDigits(fl validators.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	param := fl.Param()
	if param == "" {
		return true
	}
	lo, hi, found := strings.Cut(param, "-")
	min, err := strconv.Atoi(lo)
	if err != nil {
		return false
	}
	max := min
	if found {
		if max, err = strconv.Atoi(hi); err != nil {
			return false
		}
	}
	return len(value) >= min && len(value) <= max
}

// validateExpiry accepts MM/YY with a month between 01 and 12
func validateExpiry(fl validators.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 5 || value[2] != '/' {
		return false
	}
	month, err := strconv.Atoi(value[:2])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	_, err = strconv.Atoi(value[3:])
	return err == nil
}
