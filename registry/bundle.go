package registry

import (
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/strategy"
	"github.com/entanglement-project/entanglement-core/strategy/hybrid"
)

// defaultBundle registers every algorithm this core implements: the
// AES/ARIA block+AEAD family, ChaCha20/ChaCha20-Poly1305 streaming, X25519
// ECDH and KEM, ML-KEM-{512,768,1024}, the hybrid X25519+ML-KEM-768
// composition, ML-DSA-{44,65,87}, SLH-DSA-{128,192,256}s, and Ed25519.
// Each algorithm registers its strategy factory under a fixed catalog
// constant, and the factories are backed by the package primitive
// adapters.
type defaultBundle struct{}

func (defaultBundle) Register(r *Registry) {
	for _, t := range []catalog.CipherType{
		catalog.CipherAES128, catalog.CipherAES192, catalog.CipherAES256,
		catalog.CipherAES128GCM, catalog.CipherAES256GCM,
		catalog.CipherARIA128, catalog.CipherARIA192, catalog.CipherARIA256,
	} {
		t := t
		r.RegisterBlockCipher(t, func() strategy.BlockCipherStrategy {
			return strategy.NewBlockCipherStrategy(t)
		})
	}

	for _, t := range []catalog.CipherType{catalog.CipherChaCha20, catalog.CipherChaCha20Poly1305} {
		t := t
		r.RegisterStreamCipher(t, func() strategy.StreamCipherStrategy {
			return strategy.NewStreamCipherStrategy(t)
		})
	}

	for _, t := range []catalog.SignatureType{
		catalog.SigMLDSA44, catalog.SigMLDSA65, catalog.SigMLDSA87,
		catalog.SigSLHDSA128S, catalog.SigSLHDSA192S, catalog.SigSLHDSA256S,
		catalog.SigEd25519,
	} {
		t := t
		r.RegisterSignature(t, func() (strategy.SignatureStrategy, error) {
			return strategy.NewSignatureStrategy(t)
		})
	}

	for _, t := range []catalog.KEMType{catalog.KEMMLKEM512, catalog.KEMMLKEM768, catalog.KEMMLKEM1024, catalog.KEMX25519} {
		t := t
		r.RegisterKEM(t, func() (strategy.KEMStrategy, error) {
			return strategy.NewKEMStrategy(t)
		})
	}

	r.RegisterKEM(catalog.KEMHybridX25519768, func() (strategy.KEMStrategy, error) {
		x, err := strategy.NewKEMStrategy(catalog.KEMX25519)
		if err != nil {
			return nil, err
		}
		m, err := strategy.NewKEMStrategy(catalog.KEMMLKEM768)
		if err != nil {
			return nil, err
		}
		return hybrid.New(x, m), nil
	})

	r.RegisterECDH(catalog.KEMX25519, func() strategy.ECDHStrategy {
		return strategy.NewX25519Strategy()
	})
}

func init() {
	DefaultBundles = append(DefaultBundles, defaultBundle{})
}
