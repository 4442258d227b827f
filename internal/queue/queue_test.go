package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJobFields(t *testing.T) {
	fields := map[string]string{
		"name": "lead-audit",
		"data": `{"auditSessionId":"sess-1","userId":"user-1"}`,
	}

	job, err := decodeJobFields("job-1", fields)
	assert.NoError(t, err)
	assert.Equal(t, "lead-audit", job.Name)
	assert.Equal(t, "sess-1", job.Data.AuditSessionID)
	assert.Equal(t, "user-1", job.Data.UserID)
}

func TestDecodeJobFieldsMissingName(t *testing.T) {
	fields := map[string]string{
		"data": `{"auditSessionId":"sess-1","userId":"user-1"}`,
	}

	_, err := decodeJobFields("job-1", fields)
	assert.Error(t, err)
}

func TestDecodeJobFieldsMissingData(t *testing.T) {
	fields := map[string]string{"name": "lead-audit"}

	_, err := decodeJobFields("job-1", fields)
	assert.Error(t, err)
}

func TestDecodeJobFieldsUnparsableData(t *testing.T) {
	fields := map[string]string{
		"name": "lead-audit",
		"data": `not json`,
	}

	_, err := decodeJobFields("job-1", fields)
	assert.Error(t, err)
}
