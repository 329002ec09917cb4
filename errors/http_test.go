package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromHTTP_Unauthorized(t *testing.T) {
	req := require.New(t)

	err := FromHTTP(401, []byte(`{"message":"token expired"}`))

	req.ErrorIs(err, ErrAuthExpired)
	req.Equal("Session expired. Please login again.", UserMessage(err))
}

func TestFromHTTP_ValidationFields(t *testing.T) {
	req := require.New(t)

	err := FromHTTP(422, []byte(`{"message":"invalid input","fields":{"email":"must be a valid email"}}`))

	var validation *ValidationError
	req.ErrorAs(err, &validation)
	req.Equal("must be a valid email", validation.Fields["email"])
}

func TestFromHTTP_ServerError(t *testing.T) {
	req := require.New(t)

	err := FromHTTP(500, []byte(`{"message":"database down"}`))

	var server *ServerError
	req.ErrorAs(err, &server)
	req.Equal(500, server.Status)
	req.Equal("database down", UserMessage(err))
}

func TestFromHTTP_ServerErrorWithoutBody(t *testing.T) {
	req := require.New(t)

	err := FromHTTP(503, nil)

	var server *ServerError
	req.ErrorAs(err, &server)
	req.Equal("Something went wrong on our side. Please try again later.", UserMessage(err))
}

func TestUserMessage_Unreachable(t *testing.T) {
	require.Equal(t,
		"Could not reach the server. Please try again.",
		UserMessage(ErrUnreachable))
}
