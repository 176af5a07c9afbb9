package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/config"
)

var flagDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration term2048 would run with, after flag overrides,
as YAML. The source is reported on stderr.

Search order: --config, ~/.term2048/config.yaml, ./configs/term2048.yaml,
then the built-in default.

Examples:
  term2048 config
  term2048 config --default > ~/.term2048/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefault, "default", false, "Print the built-in default instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagDefault {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
