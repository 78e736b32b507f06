package envelope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID string `json:"id"`
}

func TestEnvelope_Unwrap(t *testing.T) {
	var testCases = []struct {
		description string
		body        string
		fallback    string
		expect      *item
		expectErr   string
	}{
		{
			description: "success with data",
			body:        `{"isSuccess":true,"value":{"code":"OK","message":"","data":{"id":"42"}},"error":null}`,
			expect:      &item{ID: "42"},
		},
		{
			description: "failure with error message",
			body:        `{"isSuccess":false,"value":null,"error":"not found"}`,
			expectErr:   "not found",
		},
		{
			description: "success without data",
			body:        `{"isSuccess":true,"value":{"code":"OK","message":"done"},"error":null}`,
			fallback:    "Failed to get group details",
			expectErr:   "Failed to get group details",
		},
		{
			description: "failure without message uses fallback",
			body:        `{"isSuccess":false,"value":null,"error":null}`,
			fallback:    "Login failed",
			expectErr:   "Login failed",
		},
		{
			description: "failure with inner message",
			body:        `{"isSuccess":false,"value":{"code":"Group.NotFound","message":"group does not exist"},"error":""}`,
			expectErr:   "group does not exist",
		},
	}

	for _, testCase := range testCases {
		anEnvelope, err := Decode[item](strings.NewReader(testCase.body))
		require.NoError(t, err, testCase.description)
		actual, err := anEnvelope.UnwrapOr(testCase.fallback)
		if testCase.expectErr != "" {
			require.Error(t, err, testCase.description)
			assert.EqualValues(t, testCase.expectErr, err.Error(), testCase.description)
			assert.True(t, IsDomain(err), testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestEnvelope_Message(t *testing.T) {
	anEnvelope, err := Decode[struct{}](strings.NewReader(`{"isSuccess":true,"value":{"code":"OK","message":"OTP sent"}}`))
	require.NoError(t, err)
	message, err := anEnvelope.Message("Failed to resend OTP")
	require.NoError(t, err)
	assert.Equal(t, "OTP sent", message)

	anEnvelope, err = Decode[struct{}](strings.NewReader(`{"isSuccess":false}`))
	require.NoError(t, err)
	_, err = anEnvelope.Message("Failed to resend OTP")
	assert.EqualError(t, err, "Failed to resend OTP")
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode[item](strings.NewReader(`<html>`))
	assert.Error(t, err)
	assert.False(t, IsDomain(err))
}
