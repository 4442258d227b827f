package extract

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhones(t *testing.T) {
	html := `<p>Call us at 01 23 45 67 89 or +33 6 12 34 56 78.</p>`

	got := Phones(html)
	sort.Strings(got)

	assert.Contains(t, got, "+33123456789")
	assert.Contains(t, got, "+33612345678")
}

func TestPhonesDiscardsDummyDigits(t *testing.T) {
	html := `<p>Sample: +1 234 567 8900</p>`
	got := Phones(html)
	assert.Empty(t, got, "ascending-digit dummy number must be filtered out")
}

func TestNormalizePhoneIsFixedPoint(t *testing.T) {
	cases := []string{
		"01 23 45 67 89",
		"+33 6 12 34 56 78",
		"0033123456789",
	}

	for _, raw := range cases {
		first := NormalizePhone(raw)
		assert.NotEmpty(t, first, raw)

		second := NormalizePhone(first)
		assert.Equal(t, first, second, "normalize(normalize(x)) must equal normalize(x) for %q", raw)
	}
}

func TestNormalizePhoneRewritesFrenchPrefixes(t *testing.T) {
	assert.Equal(t, "+33123456789", NormalizePhone("01 23 45 67 89"))
	assert.Equal(t, "+33612345678", NormalizePhone("+33 6 12 34 56 78"))
}
