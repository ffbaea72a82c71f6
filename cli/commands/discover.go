package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/discovery"
	"github.com/robgonnella/btscan/internal/service"
)

// creates and returns the "discover" command
func discover(props *CommandProps) *cobra.Command {
	var mode string
	var uuids []string
	var adapter string

	cmd := &cobra.Command{
		Use:   "discover ADDRESS...",
		Short: "Discover the services offered by one or more devices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := make([]bt.Address, 0, len(args))

			for _, arg := range args {
				addr, err := bt.ParseAddress(arg)

				if err != nil {
					return err
				}

				targets = append(targets, addr)
			}

			var discoveryMode discovery.Mode

			if mode != "" {
				parsed, err := discovery.ParseMode(mode)

				if err != nil {
					return err
				}

				discoveryMode = parsed
			}

			filter, err := bt.ParseUUIDs(uuids)

			if err != nil {
				return err
			}

			conf := props.Conf

			if adapter != "" {
				conf.Adapter = adapter
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			appCore, err := props.CreateCore(ctx, conf)

			if err != nil {
				return err
			}

			req, err := appCore.NewRequest(targets, discoveryMode, filter)

			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			err = appCore.Discover(ctx, req, func(desc service.Descriptor) {
				printService(out, desc)
			})

			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "discovery mode: minimal or full")
	cmd.Flags().StringSliceVarP(&uuids, "uuid", "u", nil, "only report services matching these uuids")
	cmd.Flags().StringVarP(&adapter, "adapter", "a", "", "address of the local adapter to use")

	return cmd
}
