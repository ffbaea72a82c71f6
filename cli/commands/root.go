package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robgonnella/btscan/internal/config"
	"github.com/robgonnella/btscan/internal/core"
	"github.com/robgonnella/btscan/internal/logger"
	"github.com/robgonnella/btscan/internal/service"
)

// CommandProps injected props that can be made available to all commands
type CommandProps struct {
	Conf config.Config
	// CreateCore connects to the host stack, only commands that talk to
	// adapters or devices call it
	CreateCore func(ctx context.Context, conf config.Config) (*core.Core, error)
	// CreateHistory opens the discovered service history
	CreateHistory func() (service.Service, error)
}

// Root builds and returns our root command
func Root(props *CommandProps) *cobra.Command {
	var verbose bool
	var silent bool

	cmd := &cobra.Command{
		Use:   "btscan",
		Short: "Discover the services offered by bluetooth devices",
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			if props.Conf.LogToFile {
				logFile := viper.Get("log-file").(string)

				file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)

				if err != nil {
					return err
				}

				logger.GlobalSetLogFile(file)
			}

			return nil
		},
	}

	// Persistent flags available to all commands
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")

	cmd.AddCommand(discover(props))
	cmd.AddCommand(adapters(props))
	cmd.AddCommand(services(props))
	cmd.AddCommand(clean())
	cmd.AddCommand(clear())
	cmd.AddCommand(info(props))
	cmd.AddCommand(version())

	return cmd
}
