package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"swapmeet/domain"
	"swapmeet/errors"
)

func TestValidateCredentials(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateCredentials(Credentials{Email: "alice@example.com", Password: "hunter2hunter2"}))

	err := ValidateCredentials(Credentials{Email: "not-an-email", Password: "short"})
	var validation *errors.ValidationError
	req.ErrorAs(err, &validation)
	req.Contains(validation.Fields, "Email")
	req.Contains(validation.Fields, "Password")
}

func TestValidateRegistration(t *testing.T) {
	req := require.New(t)

	err := ValidateRegistration(RegistrationForm{DisplayName: "A", Email: "alice@example.com", Password: "hunter2hunter2"})

	var validation *errors.ValidationError
	req.ErrorAs(err, &validation)
	req.Contains(validation.Fields, "DisplayName")
}

func TestValidateMeetup(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateMeetup(domain.Meetup{Date: "2024-06-01", Time: "15:00", Location: "Cafe"}))

	err := ValidateMeetup(domain.Meetup{Date: "2024-06-01"})
	var validation *errors.ValidationError
	req.ErrorAs(err, &validation)
	req.Contains(validation.Fields, "Time")
	req.Contains(validation.Fields, "Location")
}
