package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/imdario/mergo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/discovery"
	"github.com/robgonnella/btscan/internal/stack"
)

// GenerationAuto probe the host stack to pick its generation
const GenerationAuto = "auto"

// Config represents the data structure of our user provided yaml configuration
type Config struct {
	// Adapter address of the local adapter to use, empty for the first one
	Adapter string `yaml:"adapter"`
	// Mode default discovery mode, minimal or full
	Mode string `yaml:"mode"`
	// Filter default uuid filter applied to every discovery
	Filter []string `yaml:"filter"`
	// Generation host stack generation: auto, bluez4 or bluez5
	Generation string `yaml:"generation"`
	LogToFile  bool   `yaml:"log-to-file"`
}

// New returns umarshaled data structure of user provided config with
// defaults filled in for anything left unset
func New(confPath string) (*Config, error) {
	var config Config

	raw, err := os.ReadFile(confPath)

	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, err
	}

	if err := mergo.Merge(&config, *Default()); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", confPath, err)
	}

	return &config, nil
}

// Default returns the configuration used when the user has none
func Default() *Config {
	return &Config{
		Adapter:    "",
		Mode:       string(discovery.MinimalDiscovery),
		Filter:     []string{},
		Generation: GenerationAuto,
		LogToFile:  false,
	}
}

// Load returns the config at confPath, writing the defaults there first
// when the file does not exist yet
func Load(confPath string) (*Config, error) {
	conf, err := New(confPath)

	if err == nil {
		return conf, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	conf = Default()

	if err := write(confPath, *conf); err != nil {
		return nil, err
	}

	return conf, nil
}

// Write stores conf at the runtime "config-file" location
func Write(conf Config) error {
	configFile := viper.Get("config-file").(string)
	return write(configFile, conf)
}

func write(path string, conf Config) error {
	file, err := os.Create(path)

	if err != nil {
		return err
	}

	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	return encoder.Encode(conf)
}

// Validate checks every field can be turned into its runtime value
func (c Config) Validate() error {
	if _, err := c.AdapterAddress(); err != nil {
		return err
	}

	if _, err := c.DiscoveryMode(); err != nil {
		return err
	}

	if _, err := c.FilterUUIDs(); err != nil {
		return err
	}

	switch c.Generation {
	case GenerationAuto, string(stack.GenerationLegacy), string(stack.GenerationObjectManager):
		return nil
	default:
		return fmt.Errorf("invalid generation %q", c.Generation)
	}
}

// AdapterAddress returns the configured adapter address, zero when unset
func (c Config) AdapterAddress() (bt.Address, error) {
	if c.Adapter == "" {
		return bt.Address{}, nil
	}

	return bt.ParseAddress(c.Adapter)
}

// DiscoveryMode returns the configured discovery mode
func (c Config) DiscoveryMode() (discovery.Mode, error) {
	return discovery.ParseMode(c.Mode)
}

// FilterUUIDs returns the configured uuid filter
func (c Config) FilterUUIDs() ([]uuid.UUID, error) {
	return bt.ParseUUIDs(c.Filter)
}

// StackGeneration returns the forced generation and true, or false when
// the generation should be detected
func (c Config) StackGeneration() (stack.Generation, bool) {
	if c.Generation == GenerationAuto || c.Generation == "" {
		return "", false
	}

	return stack.Generation(c.Generation), true
}
