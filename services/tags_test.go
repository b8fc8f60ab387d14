package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagNamesFromString(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, TagNames("#a #b c"))
}

func TestTagNamesFromList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, TagNames([]any{"a", "b", "c"}))
	assert.Equal(t, []string{"a", "b"}, TagNames([]string{"a", "b"}))
}

func TestTagNamesDiscardsEmptyTokens(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, TagNames("##go   #web #"))
	assert.Equal(t, []string{"go"}, TagNames([]any{"go", "", 42}))
}

func TestTagNamesNil(t *testing.T) {
	assert.Empty(t, TagNames(nil))
	assert.Empty(t, TagNames(""))
}
