package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	app_info "github.com/robgonnella/btscan/internal/app-info"
)

func info(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print detailed app info",
		RunE: func(cmd *cobra.Command, args []string) error {
			generation := "unavailable"

			appCore, err := props.CreateCore(cmd.Context(), props.Conf)

			if err == nil {
				generation = string(appCore.Generation())
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s: %s\n\nhost stack: %s\ndiscovery mode: %s\n",
				app_info.NAME,
				app_info.VERSION,
				generation,
				props.Conf.Mode,
			)

			return nil
		},
	}

	return cmd
}
