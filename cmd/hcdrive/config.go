package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the validated runtime configuration. The listening ports
// come from the serve command's positional arguments; everything else
// from flags, config.yaml, or HCDRIVE_* environment variables.
type Config struct {
	Server struct {
		Name         string `mapstructure:"name" validate:"required"`
		Region       string `mapstructure:"region" validate:"required"`
		FrontendPort int    `mapstructure:"frontend_port" validate:"required,min=1,max=65535"`
		BackendPort  int    `mapstructure:"backend_port" validate:"required,min=1,max=65535"`
		MaxConns     int    `mapstructure:"max_conns" validate:"min=1"`
	} `mapstructure:"server"`
	Storage struct {
		Share  string `mapstructure:"share" validate:"required"`
		Static string `mapstructure:"static" validate:"required"`
	} `mapstructure:"storage"`
	Log struct {
		Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	} `mapstructure:"log"`
}

func init() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "localhost")
	v.SetDefault("server.region", "Narnia")
	v.SetDefault("server.max_conns", 64)

	v.SetDefault("storage.share", "./share")
	v.SetDefault("storage.static", "./static")

	v.SetDefault("log.level", "")
	v.SetDefault("env", "dev")
}

func readConfig(cmd *cobra.Command) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		slog.Warn("failed to bind flags", "err", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("HCDRIVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			slog.Warn("error reading config file", "err", err)
		}
	}
}

// loadConfig unmarshals the merged configuration and validates it.
func loadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
