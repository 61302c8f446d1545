package main

import (
	"fmt"
	"net"
	"os/signal"

	"gobbc/logging"
	"gobbc/sul"
	"gobbc/sulGrpc"

	"github.com/spf13/cobra"
)

func newServeProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve-probe <model>",
		Short: "Serve a YAML Mealy machine as a remote system under test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

			model, err := sul.LoadModel(args[0])
			if err != nil {
				return err
			}
			machine, err := model.Machine()
			if err != nil {
				return fmt.Errorf("%v: %w", args[0], err)
			}

			addr, _ := cmd.Flags().GetString("addr")
			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %v: %w", addr, err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), stopSignals...)
			defer stop()
			logger.Info("model loaded", "states", machine.Size(), "inputs", machine.Inputs())
			return sulGrpc.Serve(ctx, lis, sul.NewSimulated(machine), logger)
		},
	}
	cmd.Flags().String("addr", ":50051", "Listen address")
	return cmd
}
