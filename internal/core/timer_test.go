package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacerCountsDueSteps(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewPacer(10)
	p.now = func() time.Time { return now }

	assert.Equal(t, 1, p.Due())
	now = now.Add(50 * time.Millisecond)
	assert.Equal(t, 0, p.Due())
	now = now.Add(60 * time.Millisecond)
	assert.Equal(t, 1, p.Due())
	now = now.Add(300 * time.Millisecond)
	assert.Equal(t, 3, p.Due())
}

func TestPacerCapsBursts(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewPacer(100)
	p.now = func() time.Time { return now }
	p.Due()

	now = now.Add(10 * time.Second)
	assert.Equal(t, 8, p.Due())
	// the backlog is dropped rather than replayed
	now = now.Add(5 * time.Millisecond)
	assert.Equal(t, 0, p.Due())
}

func TestPacerDefaultsInvalidRates(t *testing.T) {
	p := NewPacer(0)
	assert.Equal(t, time.Second/60, p.step)
	p.SetTPS(4)
	assert.Equal(t, 250*time.Millisecond, p.step)
}
