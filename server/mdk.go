package server

import (
	"hkds/keys"
	"hkds/params"
)

// GenerateMDK draws a fresh master key hierarchy from src (§4.4).
func GenerateMDK(src params.EntropySource, kid [params.KIDSize]byte, level params.Level) (*keys.MasterKey, error) {
	return keys.GenerateMDK(src, kid, level)
}

// GenerateEDK derives the embedded device key for did under bdk
// (§4.4 generate_edk), exposed here so callers provisioning a new
// device don't need to import package keys directly.
func GenerateEDK(bdk []byte, did keys.DeviceID, level params.Level) []byte {
	return keys.GenerateEDK(did, bdk, level)
}
