package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	pv := NewPasswordValidator()

	tests := []struct {
		password string
		want     error
	}{
		{"Sh0rt!", ErrPasswordTooShort},
		{"lowercase9!x", ErrPasswordNoUpper},
		{"UPPERCASE9!X", ErrPasswordNoLower},
		{"NoDigits#here", ErrPasswordNoNumber},
		{"NoSpecial9here", ErrPasswordNoSpecial},
		{"Caaa#9pass", ErrPasswordRepeating},
		{"Abcd#2024xy", ErrPasswordSequential},
		{"Kcba#1Zq9w", ErrPasswordSequential},
		{"Password1!", ErrPasswordCommon},
		{"Bistro#Night7", nil},
		{"Ab#2Ab#2", nil},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := pv.ValidatePassword(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Bistro#Night7")
	assert.NoError(t, err)
	assert.NotEqual(t, "Bistro#Night7", hash)
	assert.True(t, CheckPassword(hash, "Bistro#Night7"))
	assert.False(t, CheckPassword(hash, "bistro#night7"))
}
