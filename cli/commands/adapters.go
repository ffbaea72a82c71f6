package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// creates and returns the "adapters" command
func adapters(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adapters",
		Short: "List local bluetooth adapters",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := props.CreateCore(cmd.Context(), props.Conf)

			if err != nil {
				return err
			}

			list, err := appCore.Adapters(cmd.Context())

			if err != nil {
				return err
			}

			for _, adapter := range list {
				power := "off"

				if adapter.Powered {
					power = "on"
				}

				fmt.Fprintf(
					cmd.OutOrStdout(),
					"%s\t%s\tpowered %s\n",
					adapter.Address,
					adapter.Path,
					power,
				)
			}

			return nil
		},
	}

	return cmd
}
