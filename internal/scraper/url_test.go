package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com/"},
		{"https://example.com", "https://example.com/"},
		{"https://example.com/", "https://example.com/"},
		{"http://example.com/path", "http://example.com/path"},
	}

	for _, tc := range cases {
		got, err := normalizeURL(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestNormalizeURLInvalid(t *testing.T) {
	_, err := normalizeURL("")
	assert.Error(t, err)

	_, err = normalizeURL("://not-a-url")
	assert.Error(t, err)
}
