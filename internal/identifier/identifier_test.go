package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		valid bool
	}{
		{"simple email", "amina@example.com", KindEmail, true},
		{"email with subdomain", "a.b@mail.example.co", KindEmail, true},
		{"ivorian phone", "+2250700000001", KindPhone, true},
		{"french phone", "+33612345678", KindPhone, true},
		{"phone without country code", "0700000001", "", false},
		{"random word", "not-an-identifier", "", false},
		{"empty string", "", "", false},
		{"email missing domain", "amina@", "", false},
		{"phone with letters", "+225ABC0000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := Classify(tt.input)
			if !tt.valid {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
