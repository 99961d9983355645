package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 85.5, Round(85.4999, 1))
	assert.Equal(t, 12.35, Round(12.346, 2))
	assert.Equal(t, 3.0, Round(2.6, 0))
}

func TestPtrDeref(t *testing.T) {
	assert.Equal(t, 5, Deref(Ptr(5)))
	var s *string
	assert.Equal(t, "", Deref(s))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 1, 200))
	assert.Equal(t, 200, Clamp(500, 1, 200))
	assert.Equal(t, 50, Clamp(50, 1, 200))
}
