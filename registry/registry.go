// Package registry is the process-wide, thread-safe map from algorithm
// identifier to strategy factory, populated exactly once during first
// access by invoking each registered Bundle. Grounded on the teacher's
// internal/cryptoinit package-init wiring pattern (crypto.SetKeyGenerators
// et al.), generalized from a handful of function variables to a proper
// map keyed by catalog.CipherType/KEMType/SignatureType.
package registry

import (
	"sync"

	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/strategy"
)

// BlockCipherFactory builds a fresh BlockCipherStrategy instance. A new
// instance is returned per call because strategies carry IV/AAD scratch
// state and must not be shared across threads.
type BlockCipherFactory func() strategy.BlockCipherStrategy

// StreamCipherFactory builds a fresh StreamCipherStrategy instance.
type StreamCipherFactory func() strategy.StreamCipherStrategy

// SignatureFactory builds a fresh SignatureStrategy instance.
type SignatureFactory func() (strategy.SignatureStrategy, error)

// KEMFactory builds a fresh KEMStrategy instance.
type KEMFactory func() (strategy.KEMStrategy, error)

// ECDHFactory builds a fresh ECDHStrategy instance.
type ECDHFactory func() strategy.ECDHStrategy

// Registry is the algorithm-identifier → strategy-factory map. Populated
// once, then read-only; no lock is required on the hot path once built,
// but the mutex guards against the unusual case of a caller registering
// bundles after first use.
type Registry struct {
	mu sync.RWMutex

	blockCiphers  map[catalog.CipherType]BlockCipherFactory
	streamCiphers map[catalog.CipherType]StreamCipherFactory
	signatures    map[catalog.SignatureType]SignatureFactory
	kems          map[catalog.KEMType]KEMFactory
	ecdh          map[catalog.KEMType]ECDHFactory
}

// New returns an empty Registry. Most callers should use Global instead;
// New exists for tests and for composing custom bundles.
func New() *Registry {
	return &Registry{
		blockCiphers:  make(map[catalog.CipherType]BlockCipherFactory),
		streamCiphers: make(map[catalog.CipherType]StreamCipherFactory),
		signatures:    make(map[catalog.SignatureType]SignatureFactory),
		kems:          make(map[catalog.KEMType]KEMFactory),
		ecdh:          make(map[catalog.KEMType]ECDHFactory),
	}
}

// Bundle registers its native-symbol-equivalent strategy factories into r.
// A bundle lists itself in DefaultBundles during its package's init step.
type Bundle interface {
	Register(r *Registry)
}

func (r *Registry) RegisterBlockCipher(t catalog.CipherType, f BlockCipherFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blockCiphers[t] = f
}

func (r *Registry) RegisterStreamCipher(t catalog.CipherType, f StreamCipherFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.streamCiphers[t] = f
}

func (r *Registry) RegisterSignature(t catalog.SignatureType, f SignatureFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signatures[t] = f
}

func (r *Registry) RegisterKEM(t catalog.KEMType, f KEMFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kems[t] = f
}

func (r *Registry) RegisterECDH(t catalog.KEMType, f ECDHFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ecdh[t] = f
}

func (r *Registry) BlockCipher(t catalog.CipherType) (strategy.BlockCipherStrategy, error) {
	r.mu.RLock()
	f, ok := r.blockCiphers[t]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	return f(), nil
}

func (r *Registry) StreamCipher(t catalog.CipherType) (strategy.StreamCipherStrategy, error) {
	r.mu.RLock()
	f, ok := r.streamCiphers[t]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	return f(), nil
}

func (r *Registry) Signature(t catalog.SignatureType) (strategy.SignatureStrategy, error) {
	r.mu.RLock()
	f, ok := r.signatures[t]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	return f()
}

func (r *Registry) KEM(t catalog.KEMType) (strategy.KEMStrategy, error) {
	r.mu.RLock()
	f, ok := r.kems[t]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	return f()
}

func (r *Registry) ECDH(t catalog.KEMType) (strategy.ECDHStrategy, error) {
	r.mu.RLock()
	f, ok := r.ecdh[t]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	return f(), nil
}

var (
	globalOnce sync.Once
	global     *Registry

	// DefaultBundles is populated by each bundle's package-level init
	// (mirroring the teacher's internal/cryptoinit pattern); Global()
	// invokes every entry exactly once.
	DefaultBundles []Bundle
)

// Global returns the process-wide registry, building it from
// DefaultBundles on first call.
func Global() *Registry {
	globalOnce.Do(func() {
		global = New()
		for _, b := range DefaultBundles {
			b.Register(global)
		}
	})
	return global
}
