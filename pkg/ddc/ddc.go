// Package ddc drives external monitors over DDC/CI: VCP feature
// read/write framed on the monitor's I2C bus, plus EDID metadata.
package ddc

import (
	"errors"
	"fmt"
	"time"
)

// I2C slave addresses on a monitor's DDC bus.
const (
	// DisplayAddr is the DDC/CI command address.
	DisplayAddr uint16 = 0x37
	// EDIDAddr answers with the 128-byte EDID block.
	EDIDAddr uint16 = 0x50
)

// FeatureLuminance is the VCP opcode for brightness. It is the only
// feature this tool touches.
const FeatureLuminance byte = 0x10

// Protocol framing constants. Checksums are XOR over the message
// including the relevant I2C address byte: 0x6E (0x37<<1) for
// host-to-display messages, 0x50 for display replies.
const (
	hostSource    = 0x51
	displayWrite  = 0x6E
	replyVirtual  = 0x50
	lengthMarker  = 0x80
	opGetVCP      = 0x01
	opGetVCPReply = 0x02
	opSetVCP      = 0x03
)

// DDC/CI mandates pacing around commands: the monitor needs time to
// prepare a reply, and back-to-back commands on the same bus corrupt
// in-flight transactions. These are protocol constants, not tunables.
const (
	replyDelay  = 40 * time.Millisecond
	settleDelay = 50 * time.Millisecond
)

var (
	// ErrNullResponse is returned when the display answers with the
	// DDC null message, typically meaning the feature is unsupported
	// or the display was not ready.
	ErrNullResponse = errors.New("ddc: null response")
	// ErrUnsupportedFeature is returned when the display reports the
	// requested VCP opcode as unsupported.
	ErrUnsupportedFeature = errors.New("ddc: unsupported VCP feature")
)

func checksum(addr byte, msg []byte) byte {
	chk := addr
	for _, b := range msg {
		chk ^= b
	}
	return chk
}

// getVCPRequest frames a Get VCP Feature request for one opcode:
// [0x51, 0x82, 0x01, op, chk].
func getVCPRequest(op byte) []byte {
	msg := []byte{hostSource, lengthMarker | 2, opGetVCP, op}
	return append(msg, checksum(displayWrite, msg))
}

// setVCPRequest frames a Set VCP Feature request:
// [0x51, 0x84, 0x03, op, hi, lo, chk].
func setVCPRequest(op byte, value uint16) []byte {
	msg := []byte{hostSource, lengthMarker | 4, opSetVCP, op, byte(value >> 8), byte(value)}
	return append(msg, checksum(displayWrite, msg))
}

// parseGetVCPReply validates an 11-byte Get VCP Feature reply and
// returns the current and maximum values. Layout:
// [0x6E, 0x88, 0x02, result, op, type, maxHi, maxLo, curHi, curLo, chk].
func parseGetVCPReply(op byte, buf []byte) (current, maximum uint16, err error) {
	if len(buf) != 11 {
		return 0, 0, fmt.Errorf("ddc: reply is %d bytes, want 11", len(buf))
	}
	if buf[0] != displayWrite {
		return 0, 0, fmt.Errorf("ddc: reply source address %#02x, want 0x6e", buf[0])
	}
	// The null message [0x6E 0x80 chk] is shorter than a real reply;
	// the bytes after it are bus filler, so check it before the full
	// checksum.
	if buf[1] == lengthMarker {
		return 0, 0, ErrNullResponse
	}
	if chk := checksum(replyVirtual, buf[:10]); chk != buf[10] {
		return 0, 0, fmt.Errorf("ddc: reply checksum %#02x, want %#02x", buf[10], chk)
	}
	if buf[1] != lengthMarker|8 || buf[2] != opGetVCPReply {
		return 0, 0, fmt.Errorf("ddc: unexpected reply header %#02x %#02x", buf[1], buf[2])
	}
	if buf[3] != 0 {
		return 0, 0, fmt.Errorf("%w: %#02x", ErrUnsupportedFeature, op)
	}
	if buf[4] != op {
		return 0, 0, fmt.Errorf("ddc: reply echoes feature %#02x, want %#02x", buf[4], op)
	}
	maximum = uint16(buf[6])<<8 | uint16(buf[7])
	current = uint16(buf[8])<<8 | uint16(buf[9])
	return current, maximum, nil
}
