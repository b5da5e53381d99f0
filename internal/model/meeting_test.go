package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidDuration(t *testing.T) {
	for _, d := range []int{15, 30, 45, 60} {
		assert.True(t, ValidDuration(d))
	}
	for _, d := range []int{0, 10, 20, 90, -15} {
		assert.False(t, ValidDuration(d))
	}
}

func TestIsJoinWindow(t *testing.T) {
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	m := Meeting{ScheduledAt: start, Duration: 30}

	assert.False(t, IsJoinWindow(m, start.Add(-11*time.Minute)))
	assert.True(t, IsJoinWindow(m, start.Add(-10*time.Minute)))
	assert.True(t, IsJoinWindow(m, start))
	assert.True(t, IsJoinWindow(m, start.Add(29*time.Minute)))
	assert.False(t, IsJoinWindow(m, start.Add(30*time.Minute)))
}
