package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveEmptyStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, RemoveEmptyStrings([]string{"", "a", "", "b"}))
	assert.Nil(t, RemoveEmptyStrings([]string{"", ""}))
}

func TestSplitTrimmed(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, SplitTrimmed(" http://a ,, http://b", ","))
	assert.Nil(t, SplitTrimmed("", ","))
	assert.Nil(t, SplitTrimmed(" , ", ","))
}
