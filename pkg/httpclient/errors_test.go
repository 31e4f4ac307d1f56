package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
)

func makeResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_PlainTextBody(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusBadRequest, "The Public Key is invalid\n"), "emailjs")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "emailjs", se.Service)
	assert.Equal(t, "The Public Key is invalid", se.Body)
	assert.Equal(t, "emailjs returned status 400: The Public Key is invalid", err.Error())
	assert.False(t, se.Temporary())
}

func TestParseResponseError_StructuredBody(t *testing.T) {
	body := `{"error":{"code":"NOT_FOUND","message":"template not found"}}`
	err := ParseResponseError(makeResponse(http.StatusNotFound, body), "mailer")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "template not found", se.Body)
}

func TestParseResponseError_EmptyBody(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusServiceUnavailable, ""), "emailjs")
	assert.Equal(t, "emailjs returned status 503", err.Error())
}

func TestStatusError_MapsToSentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, apperrors.ErrNotFound},
		{http.StatusTooManyRequests, apperrors.ErrRateLimited},
		{http.StatusConflict, apperrors.ErrConflict},
		{http.StatusBadRequest, apperrors.ErrInvalidInput},
		{http.StatusForbidden, apperrors.ErrInvalidInput},
		{http.StatusInternalServerError, apperrors.ErrServiceUnavail},
		{http.StatusBadGateway, apperrors.ErrServiceUnavail},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := ParseResponseError(makeResponse(tt.status, "x"), "svc")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStatusError_Temporary(t *testing.T) {
	assert.True(t, (&StatusError{Status: 500}).Temporary())
	assert.True(t, (&StatusError{Status: 429}).Temporary())
	assert.False(t, (&StatusError{Status: 400}).Temporary())
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(400))
	assert.True(t, IsClientError(499))
	assert.False(t, IsClientError(399))
	assert.False(t, IsClientError(500))
}
