package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hoppxi/lumactl/internal/manager"
	"github.com/hoppxi/lumactl/pkg/backlight"
	"github.com/hoppxi/lumactl/pkg/brightness"
	"github.com/hoppxi/lumactl/pkg/control"
	"github.com/hoppxi/lumactl/pkg/ddc"
	"github.com/hoppxi/lumactl/pkg/monitor"
)

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

func newLogger() zerolog.Logger {
	if !flagVerbose {
		return zerolog.Nop()
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

func selectBackend(log zerolog.Logger) (monitor.Backend, error) {
	name := flagBackend
	if name == "" {
		name = manager.Config.Load().Backend
	}
	switch name {
	case "ddc":
		return ddc.NewBackend(log), nil
	case "backlight":
		return backlight.NewBackend(log), nil
	case "auto", "":
		return monitor.NewMulti(log, ddc.NewBackend(log), backlight.NewBackend(log)), nil
	}
	return nil, fmt.Errorf("unknown backend %q (want ddc, backlight or auto)", name)
}

func target() control.Target {
	if flagDisplay < 0 {
		return control.AllDisplays()
	}
	return control.DisplayIndex(flagDisplay)
}

func useColor() bool {
	if flagNoColor || manager.Config.Load().NoColor {
		return false
	}
	return os.Getenv("NO_COLOR") == ""
}

func printError(msg string) {
	if useColor() {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", colorRed, msg, colorReset)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
}

// runChange executes one brightness request against the targeted
// displays and prints the per-display status lines. The returned
// error is errReported when the aggregate outcome failed.
func runChange(change brightness.Change) error {
	if err := change.Validate(); err != nil {
		return err
	}

	log := newLogger()
	backend, err := selectBackend(log)
	if err != nil {
		return err
	}

	fmt.Println("Querying display info... (~1-2 seconds)")
	runner := control.NewRunner(backend, log)
	res, err := runner.Run(change, target())
	if err != nil {
		return err
	}

	for _, out := range res.Outcomes {
		if out.Failure() {
			printError(out.String())
		} else {
			fmt.Println(out.String())
		}
	}

	if res.Failed() {
		return errReported
	}
	return nil
}
