package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// YNAB holds the settings needed to use a YNAB account as the existing-
// transaction source for deduplication. The token itself never lives in the
// config file; TokenEnv names the environment variable that carries it.
type YNAB struct {
	BudgetID  string `mapstructure:"budget_id"`
	AccountID string `mapstructure:"account_id"`
	TokenEnv  string `mapstructure:"token_env"`
}

// Config is the application configuration shared by the CLI and the server.
type Config struct {
	Port       string `mapstructure:"port"`
	Threshold  int    `mapstructure:"threshold"`
	OutputPath string `mapstructure:"output_path"`
	YNAB       YNAB   `mapstructure:"ynab"`
}

// Build loads configuration from the given YAML file (config.yaml in the
// working directory by default), FINANSIX_* environment variables and the
// provided flag set, in increasing precedence. A missing default config
// file is fine; a missing explicit one is an error.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "3000")
	v.SetDefault("threshold", 80)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FINANSIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
