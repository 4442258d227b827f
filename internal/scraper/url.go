package scraper

import (
	"net/url"
	"strings"

	"leadforge-worker/internal/apperrors"
)

// normalizeURL prepends https:// when the input lacks a scheme, then
// parses with net/url and emits its canonical serialization. An invalid
// URL fails the call.
func normalizeURL(raw string) (string, error) {
	if raw == "" {
		return "", apperrors.Malformed("scraper: empty URL", nil)
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return "", apperrors.Malformed("scraper: invalid URL", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", apperrors.Malformed("scraper: URL missing scheme or host", nil)
	}

	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), nil
}
