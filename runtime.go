package main

import (
	"github.com/jonboulle/clockwork"

	backpack "ledbargraph.dev/led-bargraph/bargraph_backpack"
	"ledbargraph.dev/led-bargraph/i2c"
)

// runtimeConfig carries the injected collaborators for one command run.
type runtimeConfig struct {
	settings *configSettings
	clock    clockwork.Clock
	bus      i2c.Bus
	display  *backpack.Bargraph
}

// initRuntime opens the transport and driver per the settings. The caller
// owns the bus and must close it via rt.close().
func initRuntime(settings *configSettings, clock clockwork.Clock) (*runtimeConfig, error) {
	var bus i2c.Bus
	var err error

	addr := uint16(settings.GetByte(sI2CAddr))
	if settings.GetBool(sI2CMock) {
		logVerbosef("using mock i2c device at 0x%02x", addr)
		bus = i2c.NewMock(addr, logDebugf)
	} else {
		bus, err = i2c.Open(settings.GetString(sI2CPath), addr)
		if err != nil {
			return nil, err
		}
	}

	var logf backpack.Logf
	if levels.trace {
		logf = logTracef
	}
	display, err := backpack.Open(bus, settings.GetInt(sSteps), logf)
	if err != nil {
		bus.Close()
		return nil, err
	}

	if settings.GetBool(sNoInit) {
		logVerbosef("skipping device initialization")
	} else {
		if err := display.Initialize(); err != nil {
			bus.Close()
			return nil, err
		}
	}

	return &runtimeConfig{
		settings: settings,
		clock:    clock,
		bus:      bus,
		display:  display,
	}, nil
}

func (rt *runtimeConfig) close() {
	if rt.bus != nil {
		rt.bus.Close()
	}
}
