package main

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write a config file interactively",
	Long: `Write a config file interactively.

You will be prompted for the gateway listen address, the backend store
address and credentials, and whether to enable the request audit log.
The result is written as YAML to the --config path (default ./config.yaml).`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

// fileConfig is the YAML shape written by configure. It mirrors the keys
// the config package reads.
type fileConfig struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Backend struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username,omitempty"`
		Password string `yaml:"password,omitempty"`
	} `yaml:"backend"`
	Audit struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path,omitempty"`
	} `yaml:"audit"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func runConfigure(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("%s exists, overwrite", path),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			return errors.New("aborted")
		}
	}

	var cfg fileConfig

	listen := promptui.Prompt{
		Label:    "Gateway listen address",
		Default:  ":4887",
		Validate: validateHostPort,
	}
	addr, err := listen.Run()
	if err != nil {
		return err
	}
	cfg.Server.Addr = addr

	backendAddr := promptui.Prompt{
		Label:    "Backend store address",
		Default:  "127.0.0.1:6379",
		Validate: validateHostPort,
	}
	if cfg.Backend.Addr, err = backendAddr.Run(); err != nil {
		return err
	}

	username := promptui.Prompt{Label: "Backend username (empty for none)"}
	if cfg.Backend.Username, err = username.Run(); err != nil {
		return err
	}

	password := promptui.Prompt{
		Label: "Backend password (empty for none)",
		Mask:  '*',
	}
	if cfg.Backend.Password, err = password.Run(); err != nil {
		return err
	}

	auditSel := promptui.Select{
		Label: "Enable request audit log",
		Items: []string{"no", "yes"},
	}
	_, auditChoice, err := auditSel.Run()
	if err != nil {
		return err
	}
	if auditChoice == "yes" {
		cfg.Audit.Enabled = true
		auditPath := promptui.Prompt{
			Label:   "Audit database path",
			Default: "kvgate-audit.db",
		}
		if cfg.Audit.Path, err = auditPath.Run(); err != nil {
			return err
		}
	}

	levelSel := promptui.Select{
		Label: "Log level",
		Items: []string{"info", "debug", "warn", "error"},
	}
	if _, cfg.Log.Level, err = levelSel.Run(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func validateHostPort(s string) error {
	if s == "" {
		return errors.New("address required")
	}
	if _, _, err := net.SplitHostPort(s); err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}
	return nil
}
