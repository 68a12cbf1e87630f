package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunpong/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in configuration",
	Long: `Print the embedded default configuration as YAML.

Save it to ~/.gunpong/config.yaml or ./configs/gunpong.yaml and edit it to
change the game; keys left out keep their default value.

Examples:
  gunpong defaults
  gunpong defaults > configs/gunpong.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		//nolint:errcheck // Best-effort write to stdout
		os.Stdout.Write(config.DefaultYAML())
	},
}
