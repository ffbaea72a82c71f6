package commands

import (
	"github.com/spf13/cobra"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/service"
)

// creates and returns the "services" command
func services(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services [ADDRESS]",
		Short: "List previously discovered services",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := props.CreateHistory()

			if err != nil {
				return err
			}

			var stored []*service.Descriptor

			if len(args) == 1 {
				device, err := bt.ParseAddress(args[0])

				if err != nil {
					return err
				}

				stored, err = history.GetByDevice(device)

				if err != nil {
					return err
				}
			} else {
				stored, err = history.GetAll()

				if err != nil {
					return err
				}
			}

			for _, desc := range stored {
				printService(cmd.OutOrStdout(), *desc)
			}

			return nil
		},
	}

	return cmd
}
