package main

import (
	"context"
	"errors"
	"os"
	"path"

	"github.com/spf13/viper"

	"github.com/robgonnella/btscan/cli/commands"
	app_info "github.com/robgonnella/btscan/internal/app-info"
	"github.com/robgonnella/btscan/internal/config"
	"github.com/robgonnella/btscan/internal/core"
	"github.com/robgonnella/btscan/internal/logger"
	"github.com/robgonnella/btscan/internal/service"
)

/**
 * Main entry point for all commands
 * Here we setup environment config via viper
 */

func setRunTimeConfig() (string, error) {
	userHomeDir, err := os.UserHomeDir()

	if err != nil {
		return "", err
	}

	configDir := path.Join(userHomeDir, ".config", app_info.NAME)

	if err := os.MkdirAll(configDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return "", err
	}

	configFile := path.Join(configDir, "config.yml")

	logFile := path.Join(configDir, app_info.NAME+".log")

	userCacheDir, err := os.UserCacheDir()

	if err != nil {
		return "", err
	}

	cacheDir := path.Join(userCacheDir, app_info.NAME)

	if err := os.MkdirAll(cacheDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return "", err
	}

	dbFile := path.Join(cacheDir, app_info.NAME+".db")

	// share run-time config globally using viper
	viper.Set("log-file", logFile)
	viper.Set("config-dir", configDir)
	viper.Set("config-file", configFile)
	viper.Set("cache-dir", cacheDir)
	viper.Set("database-file", dbFile)

	return configFile, nil
}

// Entry point for the cli
func main() {
	log := logger.New()

	configFile, err := setRunTimeConfig()

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	conf, err := config.Load(configFile)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Get the "root" cobra cli command
	cmd := commands.Root(&commands.CommandProps{
		Conf:       *conf,
		CreateCore: core.CreateNewAppCore,
		CreateHistory: func() (service.Service, error) {
			return core.CreateHistoryService()
		},
	})

	// Allows "grepping" of command output
	cmd.SetOut(os.Stdout)

	// execute the cobra command and exit with error code if necessary
	err = cmd.ExecuteContext(context.Background())

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
