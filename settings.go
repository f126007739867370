package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

// setting keys, so typos fail loudly at the call site
const (
	sI2CPath  = "i2c_path"
	sI2CAddr  = "i2c_address"
	sI2CMock  = "i2c_mock"
	sNoInit   = "no_init"
	sSteps    = "steps"
	sShow     = "show"
	sListen   = "listen"
	sSecret   = "secret"
	sLogFile  = "log_file"
	sDemoStep = "demo_step_time"
	sDebug    = "debug"
	sVerbose  = "verbose"
	sTrace    = "trace"
)

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() *configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sI2CPath] = "/dev/i2c-1"
	s[sI2CAddr] = byte(0x70) // 112 decimal
	s[sI2CMock] = false
	s[sNoInit] = false
	s[sSteps] = 24
	s[sShow] = false
	s[sListen] = ":8080"
	s[sSecret] = ""
	s[sLogFile] = ""
	s[sDemoStep], _ = time.ParseDuration("100ms")
	s[sDebug] = false
	s[sVerbose] = false
	s[sTrace] = false

	return &configSettings{settings: s}
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case uint8:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil {
				// addresses are often written in hex, try strconv
				valString, err2 := jsonparser.GetString(data, k)
				if err2 == nil {
					val, err = strconv.ParseInt(valString, 0, 64)
				}
			}
			if err == nil {
				if val < 0 || val > 0xff {
					return fmt.Errorf("value out of range for %s: %d", k, val)
				}
				s.settings[k] = byte(val)
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false as strings
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal = true
				case "false":
					bVal = false
				default:
					return err
				}
				err = nil
			}
			s.settings[k] = bVal
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var parsed time.Duration
				parsed, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = parsed
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("bad type for %s: %T", k, initVal)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// initSettings builds the settings from defaults plus an optional JSON
// config file. Flag overrides are applied by the caller afterwards.
func initSettings(configFile string) (*configSettings, error) {
	s := defaultSettings()

	if configFile == "" {
		return s, nil
	}

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("could not load config file '%s': %v", configFile, err)
	}
	if err := s.settingsFromJSON(data); err != nil {
		return nil, fmt.Errorf("bad config file '%s': %v", configFile, err)
	}
	return s, nil
}

func (s *configSettings) Set(key string, val interface{}) {
	s.settings[key] = val
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	case byte:
		return int(v)
	default:
		return 0
	}
}

func (s *configSettings) Dump() {
	for k, v := range s.settings {
		log.Printf("%s : %T: %v", k, v, v)
	}
}
