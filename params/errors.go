// Package params defines the security-level parameters, wire-format
// constants and error taxonomy shared by every other HKDS package
// (keys, client, server, packet) — the §3 data model layer of the
// spec, generalized from the teacher's algorithms.Variables /
// algorithms.Err* constant-table pattern.
package params

import "errors"

// Error kinds, per spec §7. Callers compare with errors.Is; none of
// these are retried inside the core.
var (
	// ErrAuthFailure means a KMAC tag did not verify, for either a
	// token unwrap or an authenticated message. The cache is never
	// populated and no key material is released on this path.
	ErrAuthFailure = errors.New("hkds: authentication failure")

	// ErrCacheExhausted means Encrypt/EncryptAuthenticate was called
	// with an empty transaction-key cache; the caller must request a
	// fresh token.
	ErrCacheExhausted = errors.New("hkds: transaction key cache exhausted")

	// ErrInvalidFormat means a packet's length or protocol_id field
	// is inconsistent with its declared flag.
	ErrInvalidFormat = errors.New("hkds: invalid packet format")

	// ErrEntropyFailure means the entropy callback returned false;
	// any MasterKey produced by the call is zeroized before this
	// error propagates.
	ErrEntropyFailure = errors.New("hkds: entropy source failure")

	// ErrCounterOverflow means the transaction key counter would
	// wrap past 2^32-1; the device is end-of-life.
	ErrCounterOverflow = errors.New("hkds: transaction counter overflow")
)
