// Package hybrid composes an X25519 strategy and an ML-KEM-768 strategy
// into the X25519+ML-KEM-768 hybrid KEM: keys, ciphertexts,
// and shared secrets are concatenated in a fixed X25519 || ML-KEM order.
package hybrid

import (
	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/strategy"
)

const (
	x25519PubSize  = 32
	x25519PrivSize = 32
	x25519CtSize   = 32
	x25519SsSize   = 32

	mlkem768EkSize = 1184
	mlkem768DkSize = 2400
	mlkem768CtSize = 1088
	mlkem768SsSize = 32

	hybridEkSize = x25519PubSize + mlkem768EkSize  // 1216
	hybridDkSize = x25519PrivSize + mlkem768DkSize // 2432
	hybridCtSize = x25519CtSize + mlkem768CtSize   // 1120
	hybridSsSize = x25519SsSize + mlkem768SsSize   // 64
)

// Strategy implements strategy.KEMStrategy by delegating to injected X25519
// and ML-KEM-768 sub-strategies. Both must be set before use; there is no
// default — both sub-strategies are mandatorily injected.
type Strategy struct {
	mlkem strategy.KEMStrategy
	// x25519AsKEM performs the X25519 side of the hybrid as an ephemeral
	// KEM-shaped operation (encapsulate = generate ephemeral + ECDH).
	x25519AsKEM strategy.KEMStrategy
}

// New constructs a hybrid KEM strategy from its two components. mlkem must
// be built over catalog.KEMMLKEM768 and x25519AsKEM over catalog.KEMX25519
// (the KEM-shaped adapter, not the raw ECDHStrategy, since hybrid
// encapsulation needs an ephemeral key pair per call).
func New(x25519AsKEM, mlkem strategy.KEMStrategy) *Strategy {
	return &Strategy{x25519AsKEM: x25519AsKEM, mlkem: mlkem}
}

func splitSDC(container *arena.SDC, firstLen int) (first, second *arena.SDC, err error) {
	buf, err := container.AsByteBuffer()
	if err != nil {
		return nil, nil, err
	}
	if len(buf) < firstLen {
		return nil, nil, strategy.ErrInvalidParameterSize
	}
	firstCopy := append([]byte(nil), buf[:firstLen]...)
	secondCopy := append([]byte(nil), buf[firstLen:]...)

	first, err = arena.NewFrom(firstCopy, true)
	if err != nil {
		return nil, nil, err
	}
	second, err = arena.NewFrom(secondCopy, true)
	if err != nil {
		first.Close()
		return nil, nil, err
	}
	return first, second, nil
}

func concatSDC(a, b *arena.SDC) (*arena.SDC, error) {
	aBuf, err := a.AsByteBuffer()
	if err != nil {
		return nil, err
	}
	bBuf, err := b.AsByteBuffer()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(aBuf)+len(bBuf))
	out = append(out, aBuf...)
	out = append(out, bBuf...)
	return arena.NewFrom(out, true)
}

// GenerateKeyPair produces the concatenation of an X25519 key pair and an
// ML-KEM-768 key pair: X25519 || ML-KEM in both the public and secret key.
func (s *Strategy) GenerateKeyPair() (pub, priv *arena.SDC, err error) {
	xPub, xPriv, err := s.x25519AsKEM.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	defer xPub.Close()
	defer xPriv.Close()

	mPub, mPriv, err := s.mlkem.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	defer mPub.Close()
	defer mPriv.Close()

	pub, err = concatSDC(xPub, mPub)
	if err != nil {
		return nil, nil, err
	}
	priv, err = concatSDC(xPriv, mPriv)
	if err != nil {
		pub.Close()
		return nil, nil, err
	}
	return pub, priv, nil
}

// Encapsulate implements the five-step hybrid encapsulation: split the
// public key, encapsulate each half, concatenate the shared secrets and
// ciphertexts.
func (s *Strategy) Encapsulate(pub *arena.SDC) (result *arena.SDC, err error) {
	buf, err := pub.AsByteBuffer()
	if err != nil {
		return nil, err
	}
	if len(buf) != hybridEkSize {
		return nil, strategy.ErrInvalidParameterSize
	}

	xPub, mPub, err := splitSDC(pub, x25519PubSize)
	if err != nil {
		return nil, err
	}
	defer xPub.Close()
	defer mPub.Close()

	xResult, err := s.x25519AsKEM.Encapsulate(xPub)
	if err != nil {
		return nil, err
	}
	defer xResult.Close()
	xCt, ok := xResult.Get(0)
	if !ok {
		return nil, strategy.ErrKemProcessingFailure
	}

	mResult, err := s.mlkem.Encapsulate(mPub)
	if err != nil {
		return nil, err
	}
	defer mResult.Close()
	mCt, ok := mResult.Get(0)
	if !ok {
		return nil, strategy.ErrKemProcessingFailure
	}

	ssSDC, err := concatSDC(xResult, mResult)
	if err != nil {
		return nil, err
	}
	ctSDC, err := concatSDC(xCt, mCt)
	if err != nil {
		ssSDC.Close()
		return nil, err
	}
	if err := ssSDC.AddContainerDataChild(ctSDC); err != nil {
		ssSDC.Close()
		ctSDC.Close()
		return nil, err
	}
	return ssSDC, nil
}

// Decapsulate is symmetric with Encapsulate: split the secret key and the
// ciphertext by the fixed byte offsets, decapsulate each half, and
// concatenate the resulting shared secrets.
func (s *Strategy) Decapsulate(priv, ciphertext *arena.SDC) (*arena.SDC, error) {
	privBuf, err := priv.AsByteBuffer()
	if err != nil {
		return nil, err
	}
	if len(privBuf) != hybridDkSize {
		return nil, strategy.ErrInvalidParameterSize
	}
	ctBuf, err := ciphertext.AsByteBuffer()
	if err != nil {
		return nil, err
	}
	if len(ctBuf) != hybridCtSize {
		return nil, strategy.ErrInvalidParameterSize
	}

	xPriv, mPriv, err := splitSDC(priv, x25519PrivSize)
	if err != nil {
		return nil, err
	}
	defer xPriv.Close()
	defer mPriv.Close()

	xCt, mCt, err := splitSDC(ciphertext, x25519CtSize)
	if err != nil {
		return nil, err
	}
	defer xCt.Close()
	defer mCt.Close()

	xSs, err := s.x25519AsKEM.Decapsulate(xPriv, xCt)
	if err != nil {
		return nil, err
	}
	defer xSs.Close()
	mSs, err := s.mlkem.Decapsulate(mPriv, mCt)
	if err != nil {
		return nil, err
	}
	defer mSs.Close()

	return concatSDC(xSs, mSs)
}
