package main

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestSettingsDefaults(t *testing.T) {
	s := defaultSettings()

	assert.Equal(t, s.GetString(sI2CPath), "/dev/i2c-1")
	assert.Equal(t, s.GetByte(sI2CAddr), byte(112))
	assert.Equal(t, s.GetInt(sSteps), 24)
	assert.Equal(t, s.GetBool(sI2CMock), false)
	assert.Equal(t, s.GetDuration(sDemoStep), 100*time.Millisecond)
}

func TestSettingsFromJSON(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{
		"i2c_path": "/dev/i2c-7",
		"i2c_address": 113,
		"i2c_mock": true,
		"steps": 12,
		"demo_step_time": "250ms"
	}`))
	assert.NilError(t, err)

	assert.Equal(t, s.GetString(sI2CPath), "/dev/i2c-7")
	assert.Equal(t, s.GetByte(sI2CAddr), byte(113))
	assert.Equal(t, s.GetBool(sI2CMock), true)
	assert.Equal(t, s.GetInt(sSteps), 12)
	assert.Equal(t, s.GetDuration(sDemoStep), 250*time.Millisecond)
}

func TestSettingsHexAddress(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{"i2c_address": "0x71"}`))
	assert.NilError(t, err)
	assert.Equal(t, s.GetByte(sI2CAddr), byte(0x71))
}

func TestSettingsAddressRangeChecked(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{"i2c_address": 300}`))
	assert.ErrorContains(t, err, "out of range")
}

func TestSettingsBoolAsString(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{"no_init": "true"}`))
	assert.NilError(t, err)
	assert.Equal(t, s.GetBool(sNoInit), true)
}

func TestSettingsUnknownKeysIgnored(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{"not_a_setting": 42}`))
	assert.NilError(t, err)
}

func TestSettingsBadDuration(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{"demo_step_time": "soon"}`))
	assert.Assert(t, err != nil)
}

func TestSettingsAccessorsOnWrongType(t *testing.T) {
	s := defaultSettings()

	// asking for the wrong type gets the zero value, never a panic
	assert.Equal(t, s.GetString(sSteps), "")
	assert.Equal(t, s.GetInt(sI2CPath), 0)
	assert.Equal(t, s.GetBool(sI2CPath), false)
	assert.Equal(t, s.GetDuration(sI2CPath), time.Duration(-1))
}

func TestInitSettingsMissingFile(t *testing.T) {
	_, err := initSettings("/nonexistent/led-bargraph.conf")
	assert.ErrorContains(t, err, "could not load config file")
}
