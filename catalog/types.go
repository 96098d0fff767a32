// Package catalog is the single source of truth for algorithm parameter
// sizes: every cipher, KEM, and signature value the core understands is a
// constant with a ParameterSizeDetail. Only cipher values carry a family tag
// (CipherType.Family), and only KEM and signature values carry a PQC flag
// (KEMType.PQC, SignatureType.PQC).
package catalog

// Family groups related algorithms (e.g. "AES", "ML-KEM").
type Family string

const (
	FamilyAES      Family = "AES"
	FamilyARIA     Family = "ARIA"
	FamilyChaCha20 Family = "ChaCha20"
	FamilyMLKEM    Family = "ML-KEM"
	FamilyMLDSA    Family = "ML-DSA"
	FamilySLHDSA   Family = "SLH-DSA"
	FamilyX25519   Family = "X25519"
	FamilyHybrid   Family = "Hybrid"
)

// ParameterSizeDetail is an immutable record of the byte sizes relevant to
// one algorithm. Only the subset relevant to a given algorithm is
// populated; the rest are left at zero.
type ParameterSizeDetail struct {
	SecretKeySize       int // symmetric key size
	PublicKeySize       int
	PrivateKeySize      int
	SignatureSize       int
	EncapsulationKeySize int // KEM public ("encapsulation") key
	DecapsulationKeySize int // KEM private ("decapsulation") key
	CiphertextSize       int // KEM ciphertext; or fixed-size AEAD tag-inclusive ciphertext where applicable
	SharedSecretSize     int
}

// Mode is a block-cipher mode of operation.
type Mode string

const (
	ModeECB      Mode = "ECB"
	ModeCBC      Mode = "CBC"
	ModeCFB      Mode = "CFB"
	ModeOFB      Mode = "OFB"
	ModeCTR      Mode = "CTR"
	ModeAEADGCM  Mode = "AEAD_GCM"
	ModeAEADCCM  Mode = "AEAD_CCM"
)

// AEAD reports whether this mode carries an authentication tag.
func (m Mode) AEAD() bool { return m == ModeAEADGCM || m == ModeAEADCCM }

// Padding is a block-cipher padding scheme.
type Padding string

const (
	PaddingPKCS5       Padding = "PKCS5"
	PaddingPKCS7       Padding = "PKCS7"
	PaddingISO7816     Padding = "ISO7816"
	PaddingISO10126    Padding = "ISO10126"
	PaddingZeroByte    Padding = "ZERO_BYTE"
	PaddingPKCS1       Padding = "PKCS1"
	PaddingOAEPAndMGF1 Padding = "OAEP_AND_MGF1"
	PaddingNone        Padding = "NO"
)

// DigestType names a hash function, used only where a padding scheme (e.g.
// OAEP) requires one.
type DigestType string

const (
	DigestSHA256 DigestType = "SHA-256"
	DigestSHA384 DigestType = "SHA-384"
	DigestSHA512 DigestType = "SHA-512"
)
