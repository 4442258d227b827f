package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionDedupSorted(t *testing.T) {
	got := unionDedupSorted([]string{"b@x.com", "a@x.com"}, []string{"a@x.com", "c@x.com"})
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, got)
}

func TestUnionDedupSortedIsIdempotent(t *testing.T) {
	existing := []string{"b@x.com", "a@x.com"}
	fresh := []string{"a@x.com", "c@x.com"}

	first := unionDedupSorted(existing, fresh)
	second := unionDedupSorted(first, fresh)

	assert.Equal(t, first, second)
}

func TestUnionDedupSortedSkipsEmpty(t *testing.T) {
	got := unionDedupSorted([]string{"", "a@x.com"}, []string{""})
	assert.Equal(t, []string{"a@x.com"}, got)
}

func TestRemoveValue(t *testing.T) {
	got := removeValue([]string{"a@x.com", "b@x.com"}, "a@x.com")
	assert.Equal(t, []string{"b@x.com"}, got)

	assert.Equal(t, []string{"a@x.com"}, removeValue([]string{"a@x.com"}, ""))
}
