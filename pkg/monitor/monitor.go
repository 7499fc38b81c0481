package monitor

import "fmt"

// Display is one addressable display with an open control channel.
// A handle is owned by exactly one caller at a time and must be
// closed once its read/apply/write cycle is done.
type Display interface {
	// Info returns the static metadata read during enumeration.
	Info() Info
	// ReadValue reads the current brightness in percent. It may fail
	// with a timeout when the device does not answer.
	ReadValue() (uint16, error)
	// WriteValue sets the brightness in percent.
	WriteValue(value uint16) error
	// Settle blocks for the transport's mandated inter-command
	// interval. Backends that need no pacing return immediately.
	Settle()
	// Close releases the underlying channel.
	Close() error
}

// Backend enumerates the displays one transport can address. The
// returned order is stable for the lifetime of the process and
// defines the indices used to target a single display.
type Backend interface {
	Name() string
	Enumerate() ([]Display, error)
}

// Placeholder literals rendered for metadata a display did not report.
const (
	UnknownModel        = "Unknown Model"
	unknownManufacturer = "???"
	unknownModelID      = "????"
	unknownSerial       = "????????"
	unknownWeek         = "??"
	unknownYear         = "????"
)

// Info holds display identity metadata. Every field is optional; a
// nil pointer or empty string renders as a fixed placeholder.
type Info struct {
	ModelName       string
	ManufacturerID  string
	ModelID         *uint16
	Serial          *uint32
	ManufactureWeek *uint8
	ManufactureYear *uint8 // years since 1990
}

// Model returns the model name, or a placeholder when the display did
// not report one.
func (i Info) Model() string {
	if i.ModelName == "" {
		return UnknownModel
	}
	return i.ModelName
}

// Description renders the one-line metadata summary used by `list`:
//
//	DELL U2720Q - (DEL:4159:3859B0A1), manufactured week 12 of 2020
func (i Info) Description() string {
	mfg := i.ManufacturerID
	if mfg == "" {
		mfg = unknownManufacturer
	}
	modelID := unknownModelID
	if i.ModelID != nil {
		modelID = fmt.Sprintf("%04X", *i.ModelID)
	}
	serial := unknownSerial
	if i.Serial != nil {
		serial = fmt.Sprintf("%08X", *i.Serial)
	}
	week := unknownWeek
	if i.ManufactureWeek != nil {
		week = fmt.Sprintf("%d", *i.ManufactureWeek)
	}
	year := unknownYear
	if i.ManufactureYear != nil {
		year = fmt.Sprintf("%d", 1990+uint16(*i.ManufactureYear))
	}
	return fmt.Sprintf("%s - (%s:%s:%s), manufactured week %s of %s",
		i.Model(), mfg, modelID, serial, week, year)
}

// Label returns the short human-readable name used in status lines,
// e.g. `display 0 (DELL U2720Q)`.
func Label(ordinal int, info Info) string {
	return fmt.Sprintf("display %d (%s)", ordinal, info.Model())
}
