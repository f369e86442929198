package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSliceContains(t *testing.T) {
	assert.True(t, StringSliceContains("b", []string{"a", "b", "c"}))
	assert.True(t, StringSliceContains("JSON", []string{"table", "json"}))
	assert.False(t, StringSliceContains("z", []string{"a", "b", "c"}))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"jxpeng98", "heaths"}, Unique([]string{"jxpeng98", "heaths", "JXPeng98"}))
	assert.Empty(t, Unique(nil))
}
