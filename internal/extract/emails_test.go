package extract

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmails(t *testing.T) {
	cases := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "simple contact email",
			html: `<a href="mailto:Jane@Example.com">Email us</a>`,
			want: []string{"jane@example.com"},
		},
		{
			name: "discards image-asset lookalikes",
			html: `<img src="team@2x.png"> <span>real@company.io</span>`,
			want: []string{"real@company.io"},
		},
		{
			name: "discards sentry dsn addresses",
			html: `https://abc123@sentry.io/456 contact@company.io`,
			want: []string{"contact@company.io"},
		},
		{
			name: "deduplicates",
			html: `hello@company.io Hello@Company.io`,
			want: []string{"hello@company.io"},
		},
		{
			name: "no matches",
			html: `<p>no addresses here</p>`,
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Emails(tc.html)
			sort.Strings(got)
			want := append([]string{}, tc.want...)
			sort.Strings(want)
			assert.Equal(t, want, got)
		})
	}
}

func TestEmailsIdempotentAndCaseClosed(t *testing.T) {
	html := `Contact Jane@Example.COM or jane@example.com for info.`

	first := Emails(html)
	second := Emails(strings.ToLower(html))

	sort.Strings(first)
	sort.Strings(second)
	assert.Equal(t, first, second)

	again := Emails(html)
	sort.Strings(again)
	assert.Equal(t, first, again)
}

func TestIsGenericEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"info@company.io", true},
		{"contact@company.io", true},
		{"jane.doe@company.io", false},
		{"founder@gmail.com", true},
		{"founder@company.io", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsGenericEmail(tc.email), tc.email)
	}
}
