package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robgonnella/btscan/internal/logger"
)

// creates and returns the "clean" command
func clean() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clears the discovered service database",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			dbFile, ok := viper.Get("database-file").(string)

			if ok && dbFile != "" {
				if err := os.Remove(dbFile); err != nil && !errors.Is(err, os.ErrNotExist) {
					return err
				}
				log.Info().Msg("removed database file")
			}

			return nil
		},
	}

	return cmd
}
