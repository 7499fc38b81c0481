// Package backlight drives built-in panels through the kernel's
// /sys/class/backlight interface. Reads come straight from sysfs;
// writes go through logind's SetBrightness call so no elevated
// privileges are needed.
package backlight

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"

	"github.com/hoppxi/lumactl/pkg/brightness"
	"github.com/hoppxi/lumactl/pkg/monitor"
)

const sysfsRoot = "/sys/class/backlight"

// Backend enumerates backlight devices under one sysfs root. Devices
// are sorted by name so enumeration order is stable across runs.
type Backend struct {
	root string
	set  setFunc
	log  zerolog.Logger
}

// setFunc applies a raw brightness value to a named backlight device.
type setFunc func(device string, raw uint32) error

func NewBackend(log zerolog.Logger) *Backend {
	return &Backend{root: sysfsRoot, set: logindSetBrightness, log: log}
}

func (b *Backend) Name() string { return "backlight" }

func (b *Backend) Enumerate() ([]monitor.Display, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", b.root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var displays []monitor.Display
	for _, name := range names {
		dir := filepath.Join(b.root, name)
		max, err := readInt(filepath.Join(dir, "max_brightness"))
		if err != nil || max <= 0 {
			b.log.Debug().Err(err).Str("device", name).Msg("skipping backlight device")
			continue
		}
		displays = append(displays, &device{
			name: name,
			dir:  dir,
			max:  max,
			set:  b.set,
			log:  b.log,
		})
	}
	return displays, nil
}

// device is one sysfs backlight device. The hardware needs no
// inter-command pacing, so Settle is a no-op.
type device struct {
	name string
	dir  string
	max  int
	set  setFunc
	log  zerolog.Logger
}

func (d *device) Info() monitor.Info {
	return monitor.Info{ModelName: d.name}
}

func (d *device) ReadValue() (uint16, error) {
	raw, err := readInt(filepath.Join(d.dir, "brightness"))
	if err != nil {
		return 0, fmt.Errorf("read brightness of %s: %w", d.name, err)
	}
	// Round half up so raw values close to max report 100.
	percent := (raw*int(brightness.MaxPercent) + d.max/2) / d.max
	if percent < 0 {
		percent = 0
	} else if percent > int(brightness.MaxPercent) {
		percent = int(brightness.MaxPercent)
	}
	d.log.Debug().Str("device", d.name).Int("raw", raw).Int("percent", percent).Msg("backlight read")
	return uint16(percent), nil
}

func (d *device) WriteValue(value uint16) error {
	raw := uint32((int(value)*d.max + int(brightness.MaxPercent)/2) / int(brightness.MaxPercent))
	d.log.Debug().Str("device", d.name).Uint16("percent", value).Uint32("raw", raw).Msg("backlight write")
	if err := d.set(d.name, raw); err != nil {
		return fmt.Errorf("set brightness of %s: %w", d.name, err)
	}
	return nil
}

func (d *device) Settle() {}

func (d *device) Close() error { return nil }

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// logindSetBrightness asks logind to set the brightness of a device
// in the caller's session.
func logindSetBrightness(device string, raw uint32) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connect to system bus: %w", err)
	}
	defer conn.Close()

	session := conn.Object("org.freedesktop.login1", "/org/freedesktop/login1/session/auto")
	call := session.Call("org.freedesktop.login1.Session.SetBrightness", 0, "backlight", device, raw)
	if call.Err != nil {
		return fmt.Errorf("logind SetBrightness: %w", call.Err)
	}
	return nil
}
