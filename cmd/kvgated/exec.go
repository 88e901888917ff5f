package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kvgate/kvgate"
	"github.com/kvgate/kvgate/command"
	"github.com/kvgate/kvgate/gateway"
)

var execCmd = &cobra.Command{
	Use:   "exec NAME [ARG...]",
	Short: "Dispatch a single store command",
	Long: `Dispatch one command through the same entry points a host store
would invoke, and print the reply.

Examples:
  kvgated exec HTTP.GET https://example.com/
  kvgated exec HTTP.POST https://example.com/ '{"x":1}' application/json
  kvgated exec HTTP.SERVER.STATUS`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := configFromContext(cmd.Context())
	if err != nil {
		return err
	}

	gw := gateway.New(gateway.Config{
		ListenAddr: cfg.Server.Addr,
		Backend:    cfg.Backend,
		CORS:       cfg.CORS,
	})
	defer func() { _ = gw.Close(cmd.Context()) }()

	disp := command.NewDispatcher()
	if err := command.New(gw, nil).RegisterAll(disp); err != nil {
		return err
	}

	reply, err := disp.Dispatch(cmd.Context(), args)
	if err != nil {
		if errors.Is(err, kvgate.ErrUnknownCommand) {
			names := disp.Names()
			sort.Strings(names)
			return fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
