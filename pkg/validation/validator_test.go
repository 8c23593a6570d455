package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72,password"`
}

func TestPasswordRule(t *testing.T) {
	validate := New()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"letters and digits", "abc12345", true},
		{"digits only", "12345678", false},
		{"letters only", "abcdefgh", false},
		{"too short", "ab1", false},
		{"exactly 72 bytes", strings.Repeat("a", 71) + "1", true},
		{"73 bytes", strings.Repeat("a", 72) + "1", false},
		{"multibyte over limit", strings.Repeat("é", 36) + "1", false},
		{"non-ascii digit only", "abcdefg٣", false},
		{"non-ascii letters only", "éééééé12", false},
		{"non-ascii alongside ascii", "éabc1234", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(signup{Name: "Jane", Email: "jane@x.com", Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	validate := New()

	err := validate.Struct(signup{Name: "J", Email: "not-an-email", Password: "abcdefgh"})
	require.Error(t, err)

	details := Translate(err)
	require.Len(t, details, 3)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "Name must be at least 2 characters", byField["name"])
	assert.Equal(t, "Invalid email format", byField["email"])
	assert.Equal(t, "Password must contain at least one letter and one digit", byField["password"])
}

func TestTranslateNonValidationError(t *testing.T) {
	details := Translate(errors.New("unexpected"))
	require.Len(t, details, 1)
	assert.Empty(t, details[0].Field)
	assert.Equal(t, "unexpected", details[0].Message)
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, "role must be one of: admin staff", DefaultMessage("role", "oneof", "admin staff"))
	assert.Equal(t, "code is invalid", DefaultMessage("code", "uuid", ""))
}
