package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIsValidAndIncreasing(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	a := NewAt(ts)
	b := NewAt(ts)

	assert.True(t, Valid(a))
	assert.True(t, Valid(b))
	assert.Less(t, a, b)
	assert.Len(t, New(), 26)
}

func TestValidRejectsGarbage(t *testing.T) {
	t.Parallel()

	assert.False(t, Valid(""))
	assert.False(t, Valid("row-1"))
}
