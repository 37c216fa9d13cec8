package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ldpc",
	Short: "Tanner graph and LDPC parity matrix construction",
	Long: `ldpc builds parity check matrices for regular LDPC codes (PEG, Gallager, populate-rows,
populate-columns) and weighted protographs, printing them as dense matrices.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
