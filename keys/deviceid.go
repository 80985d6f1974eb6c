package keys

import (
	"encoding/binary"
	"fmt"

	"hkds/params"
)

// DeviceID is the 12-byte device identity (§3):
//
//	[BDK_ID:4][PID:1][MODE:1][MID:2][DID_SUFFIX:4]
type DeviceID [params.DIDSize]byte

// NewDeviceID assembles a DeviceID from its fields.
func NewDeviceID(bdkID uint32, pid, mode byte, mid uint16, suffix uint32) DeviceID {
	var d DeviceID
	binary.BigEndian.PutUint32(d[0:4], bdkID)
	d[4] = pid
	d[5] = mode
	binary.BigEndian.PutUint16(d[6:8], mid)
	binary.BigEndian.PutUint32(d[8:12], suffix)
	return d
}

// BDKID returns the 4-byte base-derivation-key identity field.
func (d DeviceID) BDKID() uint32 { return binary.BigEndian.Uint32(d[0:4]) }

// PID returns the authentication-mode byte (unauth/KMAC-auth/SHA3-auth).
func (d DeviceID) PID() byte { return d[4] }

// Mode returns the SHAKE-strength byte (0x09/0x0A/0x0B).
func (d DeviceID) Mode() byte { return d[5] }

// MID returns the 2-byte module/manufacturer identity field.
func (d DeviceID) MID() uint16 { return binary.BigEndian.Uint16(d[6:8]) }

// Suffix returns the 4-byte per-device serial suffix.
func (d DeviceID) Suffix() uint32 { return binary.BigEndian.Uint32(d[8:12]) }

// Level returns the security level this device's DID declares via
// its MODE byte, or ErrInvalidFormat if the byte is unrecognized.
func (d DeviceID) Level() (params.Level, error) {
	lvl, err := params.LevelByProtocolID(d.Mode())
	if err != nil {
		return params.Level{}, fmt.Errorf("device id: %w", err)
	}
	return lvl, nil
}
