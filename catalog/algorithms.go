package catalog

// CipherType names a symmetric cipher construction (block or stream,
// optionally AEAD). These are the values a CipherStrategy is built for.
type CipherType string

const (
	CipherAES128             CipherType = "AES-128"
	CipherAES192             CipherType = "AES-192"
	CipherAES256             CipherType = "AES-256"
	CipherAES128GCM          CipherType = "AES-128-GCM"
	CipherAES256GCM          CipherType = "AES-256-GCM"
	CipherARIA128            CipherType = "ARIA-128"
	CipherARIA192            CipherType = "ARIA-192"
	CipherARIA256            CipherType = "ARIA-256"
	CipherChaCha20           CipherType = "ChaCha20"
	CipherChaCha20Poly1305   CipherType = "ChaCha20-Poly1305"
)

// KEMType names a key-encapsulation mechanism, classical, post-quantum, or
// hybrid composition.
type KEMType string

const (
	KEMMLKEM512       KEMType = "ML-KEM-512"
	KEMMLKEM768       KEMType = "ML-KEM-768"
	KEMMLKEM1024      KEMType = "ML-KEM-1024"
	KEMX25519         KEMType = "X25519"
	KEMHybridX25519768 KEMType = "X25519+ML-KEM-768"
)

// SignatureType names a signature algorithm, classical or post-quantum.
type SignatureType string

const (
	SigMLDSA44  SignatureType = "ML-DSA-44"
	SigMLDSA65  SignatureType = "ML-DSA-65"
	SigMLDSA87  SignatureType = "ML-DSA-87"
	SigSLHDSA128S SignatureType = "SLH-DSA-SHA2-128s"
	SigSLHDSA192S SignatureType = "SLH-DSA-SHA2-192s"
	SigSLHDSA256S SignatureType = "SLH-DSA-SHA2-256s"
	SigEd25519    SignatureType = "Ed25519"
)

// PQC reports whether this KEM involves a post-quantum component (true for
// the pure PQC KEMs and the hybrid, false for plain X25519).
func (k KEMType) PQC() bool { return k != KEMX25519 }

// PQC reports whether this signature algorithm is post-quantum.
func (s SignatureType) PQC() bool {
	switch s {
	case SigMLDSA44, SigMLDSA65, SigMLDSA87, SigSLHDSA128S, SigSLHDSA192S, SigSLHDSA256S:
		return true
	default:
		return false
	}
}

// Family returns the algorithm family a cipher type belongs to.
func (c CipherType) Family() Family {
	switch c {
	case CipherAES128, CipherAES192, CipherAES256, CipherAES128GCM, CipherAES256GCM:
		return FamilyAES
	case CipherARIA128, CipherARIA192, CipherARIA256:
		return FamilyARIA
	case CipherChaCha20, CipherChaCha20Poly1305:
		return FamilyChaCha20
	default:
		return ""
	}
}

// cipherSizes holds the canonical key/size detail for each CipherType.
var cipherSizes = map[CipherType]ParameterSizeDetail{
	CipherAES128:           {SecretKeySize: 16},
	CipherAES192:           {SecretKeySize: 24},
	CipherAES256:           {SecretKeySize: 32},
	CipherAES128GCM:        {SecretKeySize: 16},
	CipherAES256GCM:        {SecretKeySize: 32},
	CipherARIA128:          {SecretKeySize: 16},
	CipherARIA192:          {SecretKeySize: 24},
	CipherARIA256:          {SecretKeySize: 32},
	CipherChaCha20:         {SecretKeySize: 32},
	CipherChaCha20Poly1305: {SecretKeySize: 32},
}

// kemSizes holds the canonical encapsulation/decapsulation/ciphertext/
// shared-secret sizes for each KEMType. Hybrid sizes are the component-wise
// sum of X25519 (32 bytes to ek/dk/ct/ss) and ML-KEM-768.
var kemSizes = map[KEMType]ParameterSizeDetail{
	KEMMLKEM512: {EncapsulationKeySize: 800, DecapsulationKeySize: 1632, CiphertextSize: 768, SharedSecretSize: 32},
	KEMMLKEM768: {EncapsulationKeySize: 1184, DecapsulationKeySize: 2400, CiphertextSize: 1088, SharedSecretSize: 32},
	KEMMLKEM1024: {EncapsulationKeySize: 1568, DecapsulationKeySize: 3168, CiphertextSize: 1568, SharedSecretSize: 32},
	KEMX25519: {EncapsulationKeySize: 32, DecapsulationKeySize: 32, CiphertextSize: 32, SharedSecretSize: 32},
	KEMHybridX25519768: {
		EncapsulationKeySize: 1184 + 32,
		DecapsulationKeySize: 2400 + 32,
		CiphertextSize:       1088 + 32,
		SharedSecretSize:     32 + 32, // X25519 || ML-KEM-768 concatenation
	},
}

// sigSizes holds the canonical public/private key and signature sizes for
// each SignatureType.
var sigSizes = map[SignatureType]ParameterSizeDetail{
	SigMLDSA44:    {PublicKeySize: 1312, PrivateKeySize: 2560, SignatureSize: 2420},
	SigMLDSA65:    {PublicKeySize: 1952, PrivateKeySize: 4032, SignatureSize: 3309},
	SigMLDSA87:    {PublicKeySize: 2592, PrivateKeySize: 4896, SignatureSize: 4627},
	SigSLHDSA128S: {PublicKeySize: 32, PrivateKeySize: 64, SignatureSize: 7856},
	SigSLHDSA192S: {PublicKeySize: 48, PrivateKeySize: 96, SignatureSize: 16224},
	SigSLHDSA256S: {PublicKeySize: 64, PrivateKeySize: 128, SignatureSize: 29792},
	SigEd25519:    {PublicKeySize: 32, PrivateKeySize: 32, SignatureSize: 64},
}

// SizeDetail looks up the ParameterSizeDetail for a cipher type. ok is
// false for an unknown type.
func (c CipherType) SizeDetail() (ParameterSizeDetail, bool) {
	d, ok := cipherSizes[c]
	return d, ok
}

// SizeDetail looks up the ParameterSizeDetail for a KEM type.
func (k KEMType) SizeDetail() (ParameterSizeDetail, bool) {
	d, ok := kemSizes[k]
	return d, ok
}

// SizeDetail looks up the ParameterSizeDetail for a signature type.
func (s SignatureType) SizeDetail() (ParameterSizeDetail, bool) {
	d, ok := sigSizes[s]
	return d, ok
}
