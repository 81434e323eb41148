package cmd

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/relay/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Named-endpoint message passing between goroutines",
	Long: `Relay exercises the relay message-passing library: endpoints register
under a name on a hub, send envelopes to each other by name or by broadcast,
and receive them in FIFO order, with optional hand-off delivery that waits
for the receiver to pick the envelope up.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/relay/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("RELAY")
	// Replace dots with underscores for nested keys in env vars
	// e.g., RELAY_LOGGING_LEVEL for logging.level
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	if err := viper.ReadInConfig(); err != nil {
		return
	}

	viper.OnConfigChange(onConfigChange)
	viper.WatchConfig()
}

// onConfigChange re-applies settings that can change while a command runs.
// Only the log level is live; everything else is read once at startup.
func onConfigChange(e fsnotify.Event) {
	logger := activeLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("ignoring invalid config change", "file", e.Name, "error", err)
		return
	}
	if cfg.Logging.Level != "" {
		logger.SetLevel(cfg.Logging.Level)
	}
	logger.Info("config reloaded", "file", e.Name, "op", e.Op.String(), "level", logger.Level())
}
