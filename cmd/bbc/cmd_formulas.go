package main

import (
	"fmt"
	"strconv"

	"gobbc/formula"

	"github.com/spf13/cobra"
)

func newFormulasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formulas <problem>",
		Short: "Print the properties of a problem in LTSmin syntax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			problem, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid problem %q: %w", args[0], err)
			}
			if cmd.Flags().Changed("formula-dir") {
				cfg.FormulaDir, _ = cmd.Flags().GetString("formula-dir")
			}
			if cmd.Flags().Changed("alternate") {
				cfg.Checking.Alternate, _ = cmd.Flags().GetBool("alternate")
			}
			formulas, err := formula.Load(cfg.FormulaDir, problem)
			if err != nil {
				return err
			}
			for _, f := range formulas {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", f.Index, f.LTSmin(cfg.Checking.Alternate))
			}
			return nil
		},
	}
	cmd.Flags().String("formula-dir", "", "Directory of the formula files")
	cmd.Flags().BoolP("alternate", "a", true, "Use alternating edge semantics for inputs and outputs")
	return cmd
}
