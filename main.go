package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"ledbargraph.dev/led-bargraph/i2c"
)

const usageText = `LED Bargraph.

Usage:
    led-bargraph [options] clear
    led-bargraph [options] set <value> <range>
    led-bargraph [options] show
    led-bargraph [options] demo
    led-bargraph [options] watch
    led-bargraph [options] serve

Commands:
    clear   Clear the display.
    set     Display the value against the range.
    show    Show on-screen the current bargraph display.
    demo    Sweep the bargraph through its full range once.
    watch   Interactively adjust the displayed value from the keyboard.
    serve   Drive the bargraph through a small HTTP API.

Arguments:
    value   The value to display.
    range   The range of the bar graph to display.

Options:
    -h --help               Print this help.
    --config=<path>         JSON config file.
    --show                  After 'set', also render the display on-screen.
    --steps=<N>             Resolution of the bargraph (default: 24).
    --i2c-path=<path>       Path to the I2C device (default: /dev/i2c-1).
    --i2c-address=<N>       Address of the I2C device, in decimal (default: 112).
    --i2c-mock              Use an in-memory mock device instead of hardware.
    --no-init               Trust the device state, skip initialization.
    --listen=<addr>         Listen address for 'serve' (default: :8080).
    --log-file=<path>       Log to this file (rotated) instead of stderr.
    -d --debug              Debug logging.
    -v --verbose            Verbose logging.
    --trace                 Trace logging (includes every bus transaction).
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("led-bargraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usageText) }

	configFile := fs.String("config", "", "JSON config file")
	fs.String("i2c-path", "/dev/i2c-1", "path to the i2c device")
	fs.Int("i2c-address", 112, "i2c device address, in decimal")
	fs.Bool("i2c-mock", false, "use an in-memory mock device")
	fs.Bool("no-init", false, "skip device initialization")
	fs.Int("steps", 24, "bargraph resolution")
	fs.Bool("show", false, "render the display on-screen after set")
	fs.String("listen", ":8080", "listen address for serve")
	fs.String("log-file", "", "log file path")
	debugShort := fs.Bool("d", false, "debug logging")
	fs.Bool("debug", false, "debug logging")
	verboseShort := fs.Bool("v", false, "verbose logging")
	fs.Bool("verbose", false, "verbose logging")
	fs.Bool("trace", false, "trace logging")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	settings, err := initSettings(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// flags set on the command line win over the config file
	fs.Visit(func(f *flag.Flag) {
		applyFlag(settings, f)
	})
	if *debugShort {
		settings.Set(sDebug, true)
	}
	if *verboseShort {
		settings.Set(sVerbose, true)
	}

	setupLogging(settings)
	if levels.debug {
		settings.Dump()
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}
	command := fs.Arg(0)

	// argument and address validation happens before the bus is opened,
	// so a usage error never touches the device
	var value, valueRange int
	switch command {
	case "clear", "show", "demo", "watch", "serve":
	case "set":
		if fs.NArg() != 3 {
			fmt.Fprintln(stderr, "set needs <value> and <range>")
			return 2
		}
		value, err = strconv.Atoi(fs.Arg(1))
		if err != nil {
			fmt.Fprintf(stderr, "bad value '%s'\n", fs.Arg(1))
			return 2
		}
		valueRange, err = strconv.Atoi(fs.Arg(2))
		if err != nil {
			fmt.Fprintf(stderr, "bad range '%s'\n", fs.Arg(2))
			return 2
		}
	default:
		fmt.Fprintf(stderr, "unknown command '%s'\n", command)
		fs.Usage()
		return 2
	}

	if err := validateAddress(fs, settings); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	rt, err := initRuntime(settings, clockwork.NewRealClock())
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer rt.close()

	switch command {
	case "clear":
		err = cmdClear(rt)
	case "set":
		err = cmdSet(rt, stdout, value, valueRange)
	case "show":
		err = cmdShow(rt, stdout)
	case "demo":
		err = cmdDemo(rt)
	case "watch":
		err = runWatch(rt)
	case "serve":
		err = runServe(rt)
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	logDebugf("success")
	return 0
}

// applyFlag copies one command-line flag into the settings map with the
// right type.
func applyFlag(settings *configSettings, f *flag.Flag) {
	get := f.Value.(flag.Getter)
	switch f.Name {
	case "i2c-path":
		settings.Set(sI2CPath, get.Get().(string))
	case "i2c-address":
		settings.Set(sI2CAddr, byte(get.Get().(int)))
	case "i2c-mock":
		settings.Set(sI2CMock, get.Get().(bool))
	case "no-init":
		settings.Set(sNoInit, get.Get().(bool))
	case "steps":
		settings.Set(sSteps, get.Get().(int))
	case "show":
		settings.Set(sShow, get.Get().(bool))
	case "listen":
		settings.Set(sListen, get.Get().(string))
	case "log-file":
		settings.Set(sLogFile, get.Get().(string))
	case "debug":
		settings.Set(sDebug, get.Get().(bool))
	case "verbose":
		settings.Set(sVerbose, get.Get().(bool))
	case "trace":
		settings.Set(sTrace, get.Get().(bool))
	}
}

// validateAddress rejects device addresses outside the 7-bit range up
// front. The raw flag value is checked separately because it would
// otherwise wrap when narrowed to a byte (300 becomes 0x2c), and the
// mock bus never goes through i2c.Open's own check.
func validateAddress(fs *flag.FlagSet, settings *configSettings) error {
	if f := fs.Lookup("i2c-address"); f != nil {
		if v := f.Value.(flag.Getter).Get().(int); !i2c.ValidAddress(v) {
			return errors.Wrapf(i2c.ErrAddressOutOfRange, "address %d", v)
		}
	}
	if addr := settings.GetByte(sI2CAddr); !i2c.ValidAddress(int(addr)) {
		return errors.Wrapf(i2c.ErrAddressOutOfRange, "address 0x%02x", addr)
	}
	return nil
}
