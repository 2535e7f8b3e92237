package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToggle(t *testing.T) {
	for _, on := range []string{"on", "On", "1", "true", "YES"} {
		assert.True(t, parseToggle(on), on)
	}
	for _, off := range []string{"off", "0", "false", "no", ""} {
		assert.False(t, parseToggle(off), off)
	}
}
