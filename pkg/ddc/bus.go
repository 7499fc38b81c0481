package ddc

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/hoppxi/lumactl/pkg/monitor"
)

// Backend enumerates DDC/CI-capable displays by probing every I2C bus
// the host exposes for an EDID. Bus order is stable for the lifetime
// of the process, so the resulting display indices are too.
type Backend struct {
	log zerolog.Logger
}

func NewBackend(log zerolog.Logger) *Backend {
	return &Backend{log: log}
}

func (b *Backend) Name() string { return "ddc" }

func (b *Backend) Enumerate() ([]monitor.Display, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	var displays []monitor.Display
	for _, ref := range i2creg.All() {
		bus, err := ref.Open()
		if err != nil {
			b.log.Debug().Err(err).Str("bus", ref.Name).Msg("cannot open i2c bus")
			continue
		}
		raw, err := readEDID(bus)
		if err != nil {
			b.log.Debug().Err(err).Str("bus", ref.Name).Msg("no display on bus")
			bus.Close()
			continue
		}
		info, err := parseEDID(raw)
		if err != nil {
			b.log.Debug().Err(err).Str("bus", ref.Name).Msg("unreadable EDID")
			bus.Close()
			continue
		}
		b.log.Debug().Str("bus", ref.Name).Str("model", info.Model()).Msg("found display")
		displays = append(displays, &display{bus: bus, busName: ref.Name, info: info, log: b.log})
	}
	return displays, nil
}

// readEDID reads the base EDID block at 0x50: set the offset pointer
// to zero, then read 128 bytes.
func readEDID(bus i2c.Bus) ([]byte, error) {
	raw := make([]byte, edidLength)
	if err := bus.Tx(EDIDAddr, []byte{0}, raw); err != nil {
		return nil, fmt.Errorf("read EDID: %w", err)
	}
	return raw, nil
}

// display is one monitor's open DDC channel.
type display struct {
	bus     i2c.BusCloser
	busName string
	info    monitor.Info
	log     zerolog.Logger
}

func (d *display) Info() monitor.Info { return d.info }

func (d *display) ReadValue() (uint16, error) {
	current, maximum, err := getVCP(d.bus, FeatureLuminance)
	if err != nil {
		return 0, err
	}
	d.log.Debug().Str("bus", d.busName).Uint16("current", current).
		Uint16("max", maximum).Msg("luminance read")
	return current, nil
}

func (d *display) WriteValue(value uint16) error {
	if err := d.bus.Tx(DisplayAddr, setVCPRequest(FeatureLuminance, value), nil); err != nil {
		return fmt.Errorf("set luminance: %w", err)
	}
	d.log.Debug().Str("bus", d.busName).Uint16("value", value).Msg("luminance written")
	return nil
}

func (d *display) Settle() { time.Sleep(settleDelay) }

func (d *display) Close() error { return d.bus.Close() }

// getVCP performs one Get VCP Feature transaction: write the request,
// give the monitor its mandated reply window, read the reply.
func getVCP(bus i2c.Bus, op byte) (current, maximum uint16, err error) {
	if err := bus.Tx(DisplayAddr, getVCPRequest(op), nil); err != nil {
		return 0, 0, fmt.Errorf("request feature %#02x: %w", op, err)
	}
	time.Sleep(replyDelay)
	reply := make([]byte, 11)
	if err := bus.Tx(DisplayAddr, nil, reply); err != nil {
		return 0, 0, fmt.Errorf("read feature %#02x reply: %w", op, err)
	}
	return parseGetVCPReply(op, reply)
}
