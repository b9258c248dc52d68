package rdm

import (
	"fmt"
	"strconv"
	"strings"
)

// BroadcastDeviceID is the 32-bit device ID reserved for UID broadcasts,
// both the "all manufacturers" broadcast and per-manufacturer broadcasts.
const BroadcastDeviceID = 0xFFFFFFFF

// BroadcastManufacturerID is the 16-bit manufacturer ID reserved for the
// "all manufacturers, all devices" broadcast UID.
const BroadcastManufacturerID = 0xFFFF

// UID is a 48-bit RDM device identifier: a 16-bit manufacturer ID
// concatenated with a 32-bit device ID.
type UID struct {
	ManufacturerID uint16
	DeviceID       uint32
}

// BroadcastUID is the well-known "all manufacturers, all devices" UID.
var BroadcastUID = UID{ManufacturerID: BroadcastManufacturerID, DeviceID: BroadcastDeviceID}

// NewUID builds a UID from its two halves.
func NewUID(manufacturerID uint16, deviceID uint32) UID {
	return UID{ManufacturerID: manufacturerID, DeviceID: deviceID}
}

// ManufacturerBroadcast returns the broadcast UID that targets every device
// manufactured by manufacturerID, leaving other manufacturers unaddressed.
func ManufacturerBroadcast(manufacturerID uint16) UID {
	return UID{ManufacturerID: manufacturerID, DeviceID: BroadcastDeviceID}
}

// IsBroadcast reports whether u is any broadcast UID — the all-manufacturer
// broadcast or a manufacturer-specific broadcast.
func (u UID) IsBroadcast() bool {
	return u.DeviceID == BroadcastDeviceID
}

// Matches reports whether a request addressed to dest should be handled by
// a responder whose own UID is self: either an exact match, the global
// broadcast, or a broadcast scoped to self's manufacturer.
func (self UID) Matches(dest UID) bool {
	if self == dest {
		return true
	}
	if dest.DeviceID != BroadcastDeviceID {
		return false
	}
	return dest.ManufacturerID == BroadcastManufacturerID || dest.ManufacturerID == self.ManufacturerID
}

// String renders the UID as "mmmm:dddddddd" hex, matching the form used on
// the wire and in RDM controller tooling.
func (u UID) String() string {
	return fmt.Sprintf("%04x:%08x", u.ManufacturerID, u.DeviceID)
}

// ParseUID parses a "mmmm:dddddddd" hex pair, as accepted in responder
// fleet configuration.
func ParseUID(s string) (UID, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return UID{}, fmt.Errorf("parse UID %q: %w", s, ErrMalformedUID)
	}

	mfr, err := strconv.ParseUint(parts[0], 16, 16)
	if err != nil {
		return UID{}, fmt.Errorf("parse UID manufacturer %q: %w", parts[0], err)
	}

	dev, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return UID{}, fmt.Errorf("parse UID device %q: %w", parts[1], err)
	}

	return UID{ManufacturerID: uint16(mfr), DeviceID: uint32(dev)}, nil
}
