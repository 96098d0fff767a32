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
	verifyType      string
	verifySignature string
	verifyPublicKey string
	verifyMessage   string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a hex-encoded signature against a message and public key",
	Example: `  entanglement-cli verify --type Ed25519 --signature <hex> --public-key <hex> --message "hello"`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyType, "type", string(catalog.SigEd25519), "Signature algorithm identifier")
	verifyCmd.Flags().StringVar(&verifySignature, "signature", "", "Hex-encoded signature (required)")
	verifyCmd.Flags().StringVar(&verifyPublicKey, "public-key", "", "Hex-encoded public key (required)")
	verifyCmd.Flags().StringVar(&verifyMessage, "message", "", "Message that was signed (required)")
	verifyCmd.MarkFlagRequired("signature")
	verifyCmd.MarkFlagRequired("public-key")
	verifyCmd.MarkFlagRequired("message")
}

func runVerify(cmd *cobra.Command, args []string) error {
	sigBytes, err := hex.DecodeString(verifySignature)
	if err != nil {
		return fmt.Errorf("invalid signature hex: %w", err)
	}
	pubBytes, err := hex.DecodeString(verifyPublicKey)
	if err != nil {
		return fmt.Errorf("invalid public key hex: %w", err)
	}

	sig, err := registry.Global().Signature(catalog.SignatureType(verifyType))
	if err != nil {
		return fmt.Errorf("unsupported signature type %s: %w", verifyType, err)
	}

	container, err := arena.NewFrom(sigBytes, true)
	if err != nil {
		return err
	}
	defer container.Close()
	if _, err := container.AddContainerDataBytes([]byte(verifyMessage), true); err != nil {
		return err
	}
	if _, err := container.AddContainerDataBytes(pubBytes, true); err != nil {
		return err
	}

	ok, err := sig.Verify(container)
	if err != nil {
		return fmt.Errorf("verification error: %w", err)
	}
	if ok {
		fmt.Println("valid")
		return nil
	}
	fmt.Println("invalid")
	return fmt.Errorf("signature verification failed")
}
