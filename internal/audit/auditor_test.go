package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditWebsite(t *testing.T) {
	html := `<html><head>
		<title>Test Site</title>
		<meta name="description" content="A test website">
	</head><body>
		<script src="/wp-content/plugins/test.js"></script>
	</body></html>`

	result := Audit("https://example.com", html)

	assert.Equal(t, "Test Site", result.PageTitle)
	assert.True(t, result.HasSSL)
	assert.True(t, result.HasTechnology("WordPress"))
	assert.Equal(t, "A test website", result.MetaDescription)
}

func TestAuditNonSSL(t *testing.T) {
	result := Audit("http://example.com", `<html></html>`)
	assert.False(t, result.HasSSL)
}
