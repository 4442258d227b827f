// Package extract harvests contact data (emails, phone numbers) from raw
// HTML. Both extractors are pure and deterministic modulo set iteration
// order; callers must not depend on the order of the returned slices.
package extract

import (
	"regexp"
	"strings"
)

// emailPattern is compiled once at process start.
var emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"}

// genericLocalParts are local-parts that identify a shared mailbox rather
// than a person.
var genericLocalParts = map[string]struct{}{
	"info": {}, "contact": {}, "hello": {}, "support": {}, "admin": {},
	"sales": {}, "noreply": {}, "no-reply": {},
}

// genericDomains are free/consumer webmail domains.
var genericDomains = map[string]struct{}{
	"gmail": {}, "yahoo": {}, "hotmail": {}, "outlook": {}, "aol": {},
	"protonmail": {}, "icloud": {},
}

// Emails extracts, lowercases, and deduplicates email addresses found in
// raw HTML. Matches trailing an image extension or containing "@sentry"
// are discarded as false positives (CSS/JS asset URLs, error-tracking
// beacons).
func Emails(html string) []string {
	matches := emailPattern.FindAllString(html, -1)

	seen := make(map[string]struct{}, len(matches))
	result := make([]string, 0, len(matches))

	for _, m := range matches {
		email := strings.ToLower(m)

		if isImageAsset(email) || strings.Contains(email, "@sentry") {
			continue
		}

		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		result = append(result, email)
	}

	return result
}

func isImageAsset(email string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(email, ext) {
			return true
		}
	}
	return false
}

// IsGenericEmail reports whether an email's local-part or domain
// identifies a shared mailbox rather than a named individual.
func IsGenericEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}

	localPart := strings.ToLower(email[:at])
	domainPart := strings.ToLower(email[at+1:])

	if _, ok := genericLocalParts[localPart]; ok {
		return true
	}

	domainRoot := domainPart
	if dot := strings.Index(domainRoot, "."); dot >= 0 {
		domainRoot = domainRoot[:dot]
	}

	_, ok := genericDomains[domainRoot]
	return ok
}
