package main

import (
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// logLevels gates the chattier log calls; set once at startup from settings.
type logLevels struct {
	debug   bool
	verbose bool
	trace   bool
}

var levels logLevels

// setupLogging points the standard logger at the configured log file (with
// rotation) or leaves it on stderr, and records the level flags.
func setupLogging(settings *configSettings) {
	levels = logLevels{
		debug:   settings.GetBool(sDebug),
		verbose: settings.GetBool(sVerbose) || settings.GetBool(sDebug),
		trace:   settings.GetBool(sTrace),
	}
	// trace implies everything
	if levels.trace {
		levels.debug = true
		levels.verbose = true
	}

	if logFile := settings.GetString(sLogFile); logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
		})
	}
}

func logDebugf(format string, args ...interface{}) {
	if levels.debug {
		log.Printf(format, args...)
	}
}

func logVerbosef(format string, args ...interface{}) {
	if levels.verbose {
		log.Printf(format, args...)
	}
}

func logTracef(format string, args ...interface{}) {
	if levels.trace {
		log.Printf(format, args...)
	}
}
