package students

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Alice Mukasa", "alice_mukasa"},
		{"  Bob   K.  ", "bob_k"},
		{"José-Luis", "josluis"},
		{"Ñ", ""},
		{"P1 Student 07", "p1_student_07"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, makeCode(tt.name), "name %q", tt.name)
	}
}
