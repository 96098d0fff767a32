package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entanglement-project/entanglement-core/catalog"
)

var strategyListCmd = &cobra.Command{
	Use:   "strategy-list",
	Short: "List every algorithm identifier this core's registry understands",
	RunE:  runStrategyList,
}

func init() {
	rootCmd.AddCommand(strategyListCmd)
}

func runStrategyList(cmd *cobra.Command, args []string) error {
	fmt.Println("ciphers:")
	for _, t := range []catalog.CipherType{
		catalog.CipherAES128, catalog.CipherAES192, catalog.CipherAES256,
		catalog.CipherAES128GCM, catalog.CipherAES256GCM,
		catalog.CipherARIA128, catalog.CipherARIA192, catalog.CipherARIA256,
		catalog.CipherChaCha20, catalog.CipherChaCha20Poly1305,
	} {
		fmt.Printf("  %s\n", t)
	}

	fmt.Println("kems:")
	for _, t := range []catalog.KEMType{
		catalog.KEMMLKEM512, catalog.KEMMLKEM768, catalog.KEMMLKEM1024,
		catalog.KEMX25519, catalog.KEMHybridX25519768,
	} {
		fmt.Printf("  %s (pqc=%t)\n", t, t.PQC())
	}

	fmt.Println("signatures:")
	for _, t := range []catalog.SignatureType{
		catalog.SigMLDSA44, catalog.SigMLDSA65, catalog.SigMLDSA87,
		catalog.SigSLHDSA128S, catalog.SigSLHDSA192S, catalog.SigSLHDSA256S,
		catalog.SigEd25519,
	} {
		fmt.Printf("  %s (pqc=%t)\n", t, t.PQC())
	}
	return nil
}
