package main

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDrainLookups(t *testing.T) {
	t.Run("returns once lookups finish", func(t *testing.T) {
		assert.True(t, drainLookups(func() {}, time.Minute, nil))
	})

	t.Run("gives up after the grace period", func(t *testing.T) {
		stuck := make(chan struct{})
		defer close(stuck)

		start := time.Now()
		assert.False(t, drainLookups(func() { <-stuck }, 50*time.Millisecond, nil))
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("a second interrupt stops the wait", func(t *testing.T) {
		stuck := make(chan struct{})
		defer close(stuck)

		sig := make(chan os.Signal, 1)
		sig <- syscall.SIGINT
		assert.False(t, drainLookups(func() { <-stuck }, time.Minute, sig))
	})
}
