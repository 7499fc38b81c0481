package ddc

import (
	"bytes"
	"errors"
	"strings"

	"github.com/hoppxi/lumactl/pkg/monitor"
)

const edidLength = 128

var edidHeader = []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

var errNotEDID = errors.New("ddc: not a valid EDID block")

// parseEDID extracts display identity metadata from the base 128-byte
// EDID block. Fields a display left at their unset values come back
// as nil and render as placeholders when listed.
func parseEDID(raw []byte) (monitor.Info, error) {
	if len(raw) < edidLength || !bytes.Equal(raw[:8], edidHeader) {
		return monitor.Info{}, errNotEDID
	}
	sum := byte(0)
	for _, b := range raw[:edidLength] {
		sum += b
	}
	if sum != 0 {
		return monitor.Info{}, errNotEDID
	}

	info := monitor.Info{
		ManufacturerID: manufacturerID(raw[8], raw[9]),
	}

	modelID := uint16(raw[10]) | uint16(raw[11])<<8
	info.ModelID = &modelID

	if serial := uint32(raw[12]) | uint32(raw[13])<<8 | uint32(raw[14])<<16 | uint32(raw[15])<<24; serial != 0 {
		info.Serial = &serial
	}

	// Week 0 means unset; values past 54 encode the model year instead
	// of a manufacture date.
	if week := raw[16]; week >= 1 && week <= 54 {
		info.ManufactureWeek = &week
	}
	year := raw[17]
	info.ManufactureYear = &year

	info.ModelName = modelName(raw)
	return info, nil
}

// manufacturerID unpacks the PnP ID: three 5-bit letters packed
// big-endian into two bytes.
func manufacturerID(hi, lo byte) string {
	v := uint16(hi)<<8 | uint16(lo)
	letters := [3]byte{
		byte(v>>10) & 0x1F,
		byte(v>>5) & 0x1F,
		byte(v) & 0x1F,
	}
	out := make([]byte, 0, 3)
	for _, l := range letters {
		if l < 1 || l > 26 {
			return ""
		}
		out = append(out, 'A'+l-1)
	}
	return string(out)
}

// modelName scans the four 18-byte descriptor blocks for the display
// product name descriptor (tag 0xFC).
func modelName(raw []byte) string {
	for i := 0; i < 4; i++ {
		desc := raw[54+18*i : 54+18*(i+1)]
		if desc[0] != 0 || desc[1] != 0 || desc[2] != 0 || desc[3] != 0xFC {
			continue
		}
		name := string(desc[5:18])
		if nl := strings.IndexByte(name, '\n'); nl >= 0 {
			name = name[:nl]
		}
		return strings.TrimSpace(name)
	}
	return ""
}
