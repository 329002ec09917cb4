package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"swapmeet/domain"
	"swapmeet/errors"
)

var validate = validator.New()

type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

type RegistrationForm struct {
	DisplayName string `validate:"required,min=2,max=64"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=8,max=72"`
	City        string `validate:"max=64"`
}

type meetupForm struct {
	Date     string `validate:"required"`
	Time     string `validate:"required"`
	Location string `validate:"required"`
}

func ValidateCredentials(c Credentials) error {
	return toValidationError(validate.Struct(c))
}

func ValidateRegistration(f RegistrationForm) error {
	return toValidationError(validate.Struct(f))
}

func ValidateMeetup(m domain.Meetup) error {
	return toValidationError(validate.Struct(meetupForm{
		Date:     m.Date,
		Time:     m.Time,
		Location: m.Location,
	}))
}

// toValidationError converts validator output into the per-field shape the
// UI layer reads. Non-field errors pass through unchanged.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &errors.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}
