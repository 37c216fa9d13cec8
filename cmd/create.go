package cmd

import (
	"github.com/nathanhack/ldpc/cmd/internal/create/protograph"
	"github.com/nathanhack/ldpc/cmd/internal/create/regular"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "used to create a new parity check matrix",
	Long:    `create builds a parity check matrix (Tanner graph) and prints it as a dense 0/1 matrix.`,
}

// createRegularCmd represents the regular command
var createRegularCmd = &cobra.Command{
	Use:     "regular N M C",
	Aliases: []string{"r", "ldpc"},
	Short:   "Creates a regular LDPC parity check matrix",
	Long: `Creates a regular LDPC with N variable nodes (columns), M check nodes (rows) and
column weight C. The row weight is floor(N/M*C). Note a small cycle has a negative effect
on the effectiveness of the LDPC so the code with the largest girth over all iterations is kept.`,
	Args: cobra.ExactArgs(3),
	Run:  regular.RegularRun,
}

// createProtographCmd represents the protograph command
var createProtographCmd = &cobra.Command{
	Use:     "protograph TRIPLES_FILE",
	Aliases: []string{"p", "proto"},
	Short:   "Creates a weighted Tanner graph from (row, column, value) triples",
	Long:    `Creates a weighted Tanner graph from a file of "row column value" lines; use - to read stdin.`,
	Args:    cobra.ExactArgs(1),
	Run:     protograph.ProtographRun,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.AddCommand(createRegularCmd)
	createRegularCmd.Flags().StringVarP(&regular.Method, "method", "m", "peg", "construction method: peg, gallager, populate-rows or populate-columns")
	createRegularCmd.Flags().Int64VarP(&regular.Seed, "seed", "s", 0, "the random seed; note 0 means seed from the clock")
	createRegularCmd.Flags().UintVarP(&regular.Iter, "iter", "i", 1, "the number of codes to build, the one with the largest girth is kept")
	createRegularCmd.Flags().UintVarP(&regular.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")
	createRegularCmd.Flags().StringVar(&regular.ConfigFile, "config", "", "YAML config file")
	createRegularCmd.Flags().StringVar(&regular.PEGCommand, "peg", "MainPEG", "the PEG command line (may include leading arguments)")
	createRegularCmd.Flags().DurationVar(&regular.PEGTimeout, "peg-timeout", 0, "how long the PEG tool may run")
	createRegularCmd.Flags().StringVar(&regular.Chart, "chart", "", "write an HTML chart of the row/column weights to this file")
	createRegularCmd.Flags().BoolVarP(&regular.Pretty, "pretty", "p", false, "print the matrix with bracketed rows instead of plain space separated values")
	createRegularCmd.Flags().BoolVarP(&regular.Verbose, "verbose", "v", false, "enable verbose info")

	createCmd.AddCommand(createProtographCmd)
	createProtographCmd.Flags().StringVar(&protograph.Chart, "chart", "", "write an HTML chart of the row/column weights to this file")
	createProtographCmd.Flags().BoolVarP(&protograph.Pretty, "pretty", "p", false, "print the matrix with bracketed rows instead of plain space separated values")
	createProtographCmd.Flags().BoolVarP(&protograph.Verbose, "verbose", "v", false, "enable verbose info")
}
