package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jsphweid/fretdex/constants"
	"gopkg.in/yaml.v3"
)

type DynamoConfig struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

type Config struct {
	ListenAddr string        `yaml:"listen_addr"`
	LogLevel   string        `yaml:"log_level"`
	Profile    string        `yaml:"profile"`
	Settle     time.Duration `yaml:"settle"`
	Dynamo     DynamoConfig  `yaml:"dynamo"`
}

func Default() Config {
	return Config{
		ListenAddr: constants.GetListenAddr(),
		LogLevel:   constants.GetLogLevel(),
		Settle:     constants.ListenSettleMillis * time.Millisecond,
		Dynamo: DynamoConfig{
			Endpoint: constants.GetDynamoEndpoint(),
			Region:   constants.GetDynamoRegion(),
			Table:    constants.GetProfilesTable(),
		},
	}
}

// Load reads a YAML config file on top of Default. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
