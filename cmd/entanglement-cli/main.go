// Command entanglement-cli is the offline key and signature management CLI
// for this core, grounded on the teacher's cmd/sage-crypto: one Cobra root
// command, one file per subcommand registering itself in init().
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "entanglement-cli",
	Short: "entanglement-cli - key management and offline cryptographic operations",
	Long: `entanglement-cli provides offline tooling for the post-quantum cryptography
core: generating KEM and signature key pairs, signing and verifying
messages, and listing the algorithms the running binary supports.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
