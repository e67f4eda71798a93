package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"alice@example.com", true},
		{"first.last@sub.example.org", true},
		{"bad-email", false},
		{"", false},
		{"@example.com", false},
		{"a@b", false},
		{"a@@b.co", false},
		{"a@b..co", false},
		{"a@.co", false},
		{"a@co.", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidateEmail(tc.email), "email %q", tc.email)
	}
}
