package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/tambola/internal/config"
	"github.com/Iron-Ham/tambola/internal/errors"
	"github.com/Iron-Ham/tambola/internal/tui/styles"
)

var rootCmd = &cobra.Command{
	Use:   "tambola",
	Short: "Concurrent tambola game simulator",
	Long: `Tambola runs a game of tambola (housie) with one moderator announcing
numbers and every player checking them against a ticket concurrently.
Each round waits for every player to react before the next number is
announced.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// printError reports err by severity. Errors that are not meant for users
// get a pointer to the help text.
func printError(w io.Writer, err error) {
	label := "Error:"
	if errors.GetSeverity(err) <= errors.SeverityWarning {
		label = styles.Warning.Render("Warning:")
	}
	fmt.Fprintln(w, label, err)
	if !errors.IsUserFacing(err) {
		fmt.Fprintln(w, "Run 'tambola --help' for usage.")
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tambola/config.yaml)")
	bindRootFlags()
}

func bindRootFlags() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
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

	viper.SetEnvPrefix("TAMBOLA")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TAMBOLA_GAME_PLAYERS for game.players
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
