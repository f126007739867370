package main

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"

	"ledbargraph.dev/led-bargraph/i2c"
)

// testRuntime builds a runtime over a mock bus with a fake clock.
func testRuntime(t *testing.T) (*runtimeConfig, *i2c.Mock, clockwork.FakeClock) {
	t.Helper()

	settings := defaultSettings()
	settings.Set(sI2CMock, true)

	clock := clockwork.NewFakeClock()
	rt, err := initRuntime(settings, clock)
	assert.NilError(t, err)
	t.Cleanup(rt.close)

	return rt, rt.bus.(*i2c.Mock), clock
}

// testBlockDuration advances the fake clock one sleeper at a time.
func testBlockDuration(clock clockwork.FakeClock, step time.Duration, count int) {
	for i := 0; i < count; i++ {
		clock.BlockUntil(1)
		clock.Advance(step)
	}
}
