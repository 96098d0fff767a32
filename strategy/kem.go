package strategy

import (
	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/primitive"
)

// kemStrategy implements KEMStrategy over a primitive.KEM adapter, with
// strict parameter-size validation against the catalog.
type kemStrategy struct {
	kemType catalog.KEMType
	impl    primitive.KEM
}

// NewKEMStrategy returns a KEMStrategy for t.
func NewKEMStrategy(t catalog.KEMType) (KEMStrategy, error) {
	impl, err := primitive.NewKEM(t)
	if err != nil {
		return nil, err
	}
	return &kemStrategy{kemType: t, impl: impl}, nil
}

func (k *kemStrategy) GenerateKeyPair() (*arena.SDC, *arena.SDC, error) {
	pub, priv, err := k.impl.GenerateKeyPair()
	if err != nil {
		return nil, nil, ErrKemProcessingFailure
	}
	pubSDC, err := arena.NewFrom(pub, true)
	if err != nil {
		return nil, nil, err
	}
	privSDC, err := arena.NewFrom(priv, true)
	if err != nil {
		pubSDC.Close()
		return nil, nil, err
	}
	return pubSDC, privSDC, nil
}

// Encapsulate validates byte_size == ek_size, then returns an SDC whose
// segment is the shared secret and whose first binding is the ciphertext.
func (k *kemStrategy) Encapsulate(pub *arena.SDC) (*arena.SDC, error) {
	detail, _ := k.kemType.SizeDetail()
	pubBytes, err := sdcBytes(pub)
	if err != nil {
		return nil, err
	}
	if len(pubBytes) != detail.EncapsulationKeySize {
		return nil, ErrInvalidParameterSize
	}

	ct, ss, err := k.impl.Encapsulate(pubBytes)
	if err != nil {
		return nil, ErrKemProcessingFailure
	}

	ssSDC, err := arena.NewFrom(ss, true)
	if err != nil {
		return nil, err
	}
	ctSDC, err := arena.NewFrom(ct, true)
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

// Decapsulate validates both sizes, then returns an SDC with the shared
// secret.
func (k *kemStrategy) Decapsulate(priv, ciphertext *arena.SDC) (*arena.SDC, error) {
	detail, _ := k.kemType.SizeDetail()
	privBytes, err := sdcBytes(priv)
	if err != nil {
		return nil, err
	}
	if len(privBytes) != detail.DecapsulationKeySize {
		return nil, ErrInvalidParameterSize
	}
	ctBytes, err := sdcBytes(ciphertext)
	if err != nil {
		return nil, err
	}
	if len(ctBytes) != detail.CiphertextSize {
		return nil, ErrInvalidParameterSize
	}

	ss, err := k.impl.Decapsulate(privBytes, ctBytes)
	if err != nil {
		return nil, ErrKemProcessingFailure
	}
	return arena.NewFrom(ss, true)
}
