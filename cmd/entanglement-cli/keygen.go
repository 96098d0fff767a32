package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/primitive"
	"github.com/entanglement-project/entanglement-core/registry"
)

var (
	keygenKind string
	keygenType string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a signature or KEM key pair",
	Long: `Generate a new key pair for the given kind and algorithm, printing the
public and private key as hex to stdout.

Supported kinds:
  - sig: ML-DSA-44/65/87, SLH-DSA-SHA2-{128,192,256}s, Ed25519
  - kem: ML-KEM-512/768/1024, X25519, X25519+ML-KEM-768 (hybrid)`,
	Example: `  entanglement-cli keygen --kind sig --type ML-DSA-65
  entanglement-cli keygen --kind kem --type X25519+ML-KEM-768`,
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringVar(&keygenKind, "kind", "sig", "Key kind (sig, kem)")
	keygenCmd.Flags().StringVar(&keygenType, "type", string(catalog.SigEd25519), "Algorithm identifier")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	switch keygenKind {
	case "sig":
		return keygenSignature(catalog.SignatureType(keygenType))
	case "kem":
		return keygenKEM(catalog.KEMType(keygenType))
	default:
		return fmt.Errorf("unsupported kind: %s", keygenKind)
	}
}

func keygenSignature(t catalog.SignatureType) error {
	signer, err := primitive.NewSigner(t)
	if err != nil {
		return fmt.Errorf("unsupported signature type %s: %w", t, err)
	}
	pub, priv, err := signer.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("key generation failed: %w", err)
	}
	fmt.Printf("type: %s\npublic_key: %s\nprivate_key: %s\n", t, hex.EncodeToString(pub), hex.EncodeToString(priv))
	return nil
}

func keygenKEM(t catalog.KEMType) error {
	kem, err := registry.Global().KEM(t)
	if err != nil {
		return fmt.Errorf("unsupported KEM type %s: %w", t, err)
	}
	pub, priv, err := kem.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("key generation failed: %w", err)
	}
	defer pub.Close()
	defer priv.Close()

	pubBytes, err := pub.AsByteBuffer()
	if err != nil {
		return err
	}
	privBytes, err := priv.AsByteBuffer()
	if err != nil {
		return err
	}
	fmt.Printf("type: %s\npublic_key: %s\nprivate_key: %s\n", t, hex.EncodeToString(pubBytes), hex.EncodeToString(privBytes))
	return nil
}
