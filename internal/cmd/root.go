package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/searcher/internal/cmd/config"
	"github.com/Iron-Ham/searcher/internal/config"
	"github.com/Iron-Ham/searcher/internal/errors"
	"github.com/Iron-Ham/searcher/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "searcher",
	Short: "Live text filter for HTML lists and tables",
	Long: `Searcher filters the items of an HTML list or table by a search term.

Items whose text contains the term stay visible, the rest are hidden, and
every occurrence of the term can be wrapped in highlight markup. Use
'searcher filter' to process a document non-interactively and
'searcher browse' to filter it live in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and reports any error on stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// printError writes err prefixed with its severity. Errors that are not
// meant for users also point at the log file.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %v\n", errors.GetSeverity(err), err)
	if !errors.IsUserFacing(err) {
		fmt.Fprintln(w, "Run with logging enabled and check 'searcher logs' for details.")
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/searcher/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	configcmd.Register(rootCmd)
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
		viper.AddConfigPath("$HOME/.config/searcher")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SEARCHER")
	// Replace dots with underscores for nested keys in env vars
	// e.g., SEARCHER_SEARCHER_ITEM_SELECTOR for searcher.item_selector
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newLogger creates the logger described by the logging section, or a
// no-op logger when logging is disabled.
func newLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	dir := cfg.Logging.ResolveDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create log directory: %v\n", err)
		return logging.NopLogger()
	}

	logger, err := logging.NewLogger(dir, cfg.Logging.Level, cfg.Logging.Rotation())
	if err != nil {
		// Log creation failure shouldn't prevent the command from running
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
		return logging.NopLogger()
	}

	return logger
}
