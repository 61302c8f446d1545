package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bbc",
		Short: "Black-box checking of reactive systems",
		Long: `bbc learns a Mealy machine of a reactive system and checks LTL properties
on every hypothesis. Every property falsified on the system is written as a
result record.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path of a YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newFormulasCmd(),
		newServeProbeCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bbc version %s\n", version)
		},
	}
}
