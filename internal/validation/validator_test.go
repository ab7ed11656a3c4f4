package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  []string
	}{
		{name: "valid", creds: Credentials{Email: "test@test.com", Password: "password123"}},
		{name: "both missing", creds: Credentials{}, want: []string{"Invalid email address", "Password must be at least 8 characters long."}},
		{name: "bad email", creds: Credentials{Email: "not-an-email", Password: "password123"}, want: []string{"Invalid email address"}},
		{name: "short password", creds: Credentials{Email: "test@test.com", Password: "abc"}, want: []string{"Password must be at least 8 characters long."}},
		{name: "exactly eight", creds: Credentials{Email: "test@test.com", Password: "12345678"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.want, verr.Messages)
			assert.Equal(t, tt.want[0], err.Error()[:len(tt.want[0])])
		})
	}
}

func TestValidator_NonStruct(t *testing.T) {
	err := NewValidator().Validate("not a struct")
	assert.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}
