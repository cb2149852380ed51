package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gosh/internal/config"
	"gosh/internal/shell"
)

var version = "0.2.0"

func main() {
	var (
		configPath string
		command    string
		noColor    bool
	)

	root := &cobra.Command{
		Use:           "gosh",
		Short:         "An interactive shell with job control",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = defaultConfigPath()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if noColor {
				cfg.Color = false
			}

			s, err := shell.New(cfg)
			if err != nil {
				return err
			}

			if command != "" {
				os.Exit(s.RunCommand(command))
			}
			os.Exit(s.Run())
			return nil
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to the config file (default $HOME/.gosh.yml)")
	root.Flags().StringVarP(&command, "command", "c", "", "run a single command and exit")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable prompt and status colors")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gosh: %v\n", err)
		os.Exit(1)
	}
}

// defaultConfigPath anchors the config in the user's home directory so the
// file found does not depend on where the shell was started.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gosh.yml"
	}
	return filepath.Join(home, ".gosh.yml")
}
