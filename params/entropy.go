package params

import "crypto/rand"

// EntropySource is the external collaborator that supplies random
// bytes to generate_mdk (§6): it fills buf and reports success. The
// core treats it as synchronous; a caller-side blocking source is
// the caller's concern.
type EntropySource func(buf []byte) bool

// CryptoRandSource is the default production EntropySource, built on
// crypto/rand — following the teacher's own use of crypto/rand at
// the point it needs key-quality randomness (main.go's ADM-key
// generation), rather than introducing a new randomness dependency
// for a concern the standard library already covers correctly.
func CryptoRandSource(buf []byte) bool {
	_, err := rand.Read(buf)
	return err == nil
}
