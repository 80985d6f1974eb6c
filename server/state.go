// Package server implements the HKDS server engine: the scalar token
// wrap / message decrypt path (§4.4), and the x8/x64 batched variants
// that process many independent client sessions per call (§4.5).
package server

import (
	"hkds/keys"
	"hkds/params"
)

// State is the ephemeral per-packet server context (§3 ServerState):
// the KSN from an inbound request plus a shared reference to the
// master key hierarchy it was issued under. Exclusively owned by its
// caller for the duration of a call (§5); MasterKey itself may be
// shared read-only across many States.
type State struct {
	KSN             keys.KSN
	MDK             *keys.MasterKey
	Level           params.Level
	CacheMultiplier int
}

// New constructs server state for handling one inbound packet.
func New(ksn keys.KSN, mdk *keys.MasterKey, level params.Level, cacheMultiplier int) State {
	return State{KSN: ksn, MDK: mdk, Level: level, CacheMultiplier: cacheMultiplier}
}

func (s State) cacheSize() int { return s.Level.CacheSize(s.CacheMultiplier) }
