package strategy

import "encoding/binary"

// CalculateNonce implements the TLS-1.3-style nonce derivation:
// copy baseIV, then XOR the 64-bit
// big-endian sequence number into its last 8 bytes. Pure and
// referentially transparent; baseIV is never mutated.
func CalculateNonce(baseIV []byte, sequence uint64) []byte {
	nonce := make([]byte, len(baseIV))
	copy(nonce, baseIV)

	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], sequence)

	offset := len(nonce) - 8
	for i := 0; i < 8 && offset+i >= 0; i++ {
		nonce[offset+i] ^= seqBytes[i]
	}
	return nonce
}
