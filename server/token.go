package server

import "hkds/keys"

// EncryptToken re-derives the EDK for state.KSN's device and wraps a
// fresh session token for it (§4.4 encrypt_token). Output is
// K+T bytes.
func (s State) EncryptToken() []byte {
	did := s.KSN.DID()
	edk := keys.GenerateEDK(did, s.MDK.BDK, s.Level)

	ctok := keys.BuildCTOK(s.KSN, s.Level, s.cacheSize())
	tms := keys.BuildTMS(s.KSN, s.Level)
	token := keys.DeriveToken(ctok[:], s.MDK.STK, s.Level)

	return keys.WrapToken(token, ctok[:], edk, tms, s.Level)
}
