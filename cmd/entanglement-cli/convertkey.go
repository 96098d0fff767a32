package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entanglement-project/entanglement-core/primitive"
)

var (
	convertKeyKind string
	convertKeyHex  string
)

var convertKeyCmd = &cobra.Command{
	Use:   "convert-key",
	Short: "Convert a hex-encoded Ed25519 key to its X25519 equivalent",
	Long: `Converts an Ed25519 signing key into the X25519 key agreement key
sharing the same seed, so a single long-term Ed25519 identity key can also
be used for hybrid KEM key agreement.`,
	Example: `  entanglement-cli convert-key --kind public --key <hex>
  entanglement-cli convert-key --kind private --key <hex>`,
	RunE: runConvertKey,
}

func init() {
	rootCmd.AddCommand(convertKeyCmd)
	convertKeyCmd.Flags().StringVar(&convertKeyKind, "kind", "public", "Key kind (public, private)")
	convertKeyCmd.Flags().StringVar(&convertKeyHex, "key", "", "Hex-encoded Ed25519 key (required)")
	convertKeyCmd.MarkFlagRequired("key")
}

func runConvertKey(cmd *cobra.Command, args []string) error {
	keyBytes, err := hex.DecodeString(convertKeyHex)
	if err != nil {
		return fmt.Errorf("invalid key hex: %w", err)
	}

	var x []byte
	switch convertKeyKind {
	case "public":
		x, err = primitive.ConvertEd25519PublicToX25519(ed25519.PublicKey(keyBytes))
	case "private":
		x, err = primitive.ConvertEd25519PrivateToX25519(ed25519.PrivateKey(keyBytes))
	default:
		return fmt.Errorf("unsupported kind: %s", convertKeyKind)
	}
	if err != nil {
		return err
	}
	fmt.Printf("x25519_%s: %s\n", convertKeyKind, hex.EncodeToString(x))
	return nil
}
