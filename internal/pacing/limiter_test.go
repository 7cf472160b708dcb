package pacing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnlimitedDoesNotBlock(t *testing.T) {
	l := NewLimiter(0)
	assert.Zero(t, l.Interval())

	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.Wait()
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestLimitHoldsFramePeriod(t *testing.T) {
	l := NewLimiter(100)
	assert.Equal(t, 10*time.Millisecond, l.Interval())

	start := time.Now()
	for i := 0; i < 5; i++ {
		l.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestResyncAfterHitch(t *testing.T) {
	l := NewLimiter(200)
	l.Wait()
	time.Sleep(30 * time.Millisecond)

	// late by several frames: the next wait resyncs rather than returning
	// immediately forever
	l.Wait()
	start := time.Now()
	l.Wait()
	assert.GreaterOrEqual(t, time.Since(start), 4*time.Millisecond)
}

func TestReset(t *testing.T) {
	l := NewLimiter(50)
	l.Wait()
	l.Reset()
	assert.True(t, l.next.IsZero())
}
