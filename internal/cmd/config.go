package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/relay/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View relay configuration",
	Long: `View relay configuration.

Without arguments, displays the effective configuration: defaults, overlaid
by the config file, RELAY_* environment variables and command-line flags.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var (
	configJSON bool // Output as JSON
)

func init() {
	configShowCmd.Flags().BoolVar(&configJSON, "json", false, "Output configuration as JSON")
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if configJSON {
		data, err := json.MarshalIndent(cfg.Settings(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	data, err := yaml.Marshal(cfg.Settings())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	// Show where config is being read from
	p := newPrinter(out)
	if used := viper.ConfigFileUsed(); used != "" {
		p.muted("# config file: %s", used)
	} else {
		p.muted("# config file: (none - using defaults)")
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		path = config.ConfigFile()
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
