package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile mirrors the config.yaml layout consumed by readConfig.
type configFile struct {
	Server struct {
		Name     string `yaml:"name"`
		Region   string `yaml:"region"`
		MaxConns int    `yaml:"max_conns,omitempty"`
	} `yaml:"server"`
	Storage struct {
		Share  string `yaml:"share"`
		Static string `yaml:"static"`
	} `yaml:"storage"`
	Log struct {
		Level string `yaml:"level,omitempty"`
	} `yaml:"log"`
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactively write a config.yaml",
	Long: `Interactively write a config.yaml in the current directory. You will
be prompted for the server identity, the share and static directories,
and the log level. The serve command picks the file up automatically.`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(_ *cobra.Command, _ []string) error {
	const path = "config.yaml"

	if _, err := os.Stat(path); err == nil {
		confirm := promptui.Prompt{
			Label:     "config.yaml already exists. Overwrite it",
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Println("Cancelled.")
			return handlePromptError(err)
		}
	}

	var cfg configFile

	namePrompt := promptui.Prompt{
		Label:   "Server address shown to users",
		Default: "localhost",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("server address is required")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Server.Name = name

	regionPrompt := promptui.Prompt{
		Label:   "Server region shown to users",
		Default: "Narnia",
	}
	region, err := regionPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Server.Region = region

	sharePrompt := promptui.Prompt{
		Label:   "Shared files directory",
		Default: "./share",
	}
	cfg.Storage.Share, err = sharePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	staticPrompt := promptui.Prompt{
		Label:   "Static assets directory",
		Default: "./static",
	}
	cfg.Storage.Static, err = staticPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	maxConnsPrompt := promptui.Prompt{
		Label:   "Max concurrent connections per port",
		Default: "64",
		Validate: func(input string) error {
			n, convErr := strconv.Atoi(input)
			if convErr != nil || n < 1 {
				return errors.New("must be a positive number")
			}
			return nil
		},
	}
	maxConnsStr, err := maxConnsPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Server.MaxConns, _ = strconv.Atoi(maxConnsStr)

	levelPrompt := promptui.Select{
		Label: "Log level",
		Items: []string{"debug", "info", "warn", "error"},
	}
	_, level, err := levelPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Log.Level = level

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s.\n", path)
	return nil
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		return nil
	}
	return err
}
