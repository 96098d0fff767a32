package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/registry"
)

var (
	signType       string
	signPrivateKey string
	signMessage    string
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a message with a hex-encoded private key",
	Example: `  entanglement-cli sign --type Ed25519 --private-key <hex> --message "hello"`,
	RunE: runSign,
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVar(&signType, "type", string(catalog.SigEd25519), "Signature algorithm identifier")
	signCmd.Flags().StringVar(&signPrivateKey, "private-key", "", "Hex-encoded private key (required)")
	signCmd.Flags().StringVar(&signMessage, "message", "", "Message to sign (required)")
	signCmd.MarkFlagRequired("private-key")
	signCmd.MarkFlagRequired("message")
}

func runSign(cmd *cobra.Command, args []string) error {
	privBytes, err := hex.DecodeString(signPrivateKey)
	if err != nil {
		return fmt.Errorf("invalid private key hex: %w", err)
	}

	sig, err := registry.Global().Signature(catalog.SignatureType(signType))
	if err != nil {
		return fmt.Errorf("unsupported signature type %s: %w", signType, err)
	}

	privSDC, err := arena.NewFrom(privBytes, true)
	if err != nil {
		return err
	}
	defer privSDC.Close()

	sigSDC, err := sig.Sign(privSDC, []byte(signMessage))
	if err != nil {
		return fmt.Errorf("signing failed: %w", err)
	}
	defer sigSDC.Close()

	sigBytes, err := sigSDC.AsByteBuffer()
	if err != nil {
		return err
	}
	fmt.Printf("signature: %s\n", hex.EncodeToString(sigBytes))
	return nil
}
