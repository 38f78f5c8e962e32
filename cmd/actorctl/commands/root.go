// Package commands implements actorctl's cobra command tree. Config is
// resolved through viper, layering (highest precedence first) CLI flags,
// ACTORCTL_* environment variables, and an actorctl.yaml file.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "actorctl",
	Short: "Drive the actor runtime from the command line",
	Long: `actorctl spawns a small fleet of actors under the actor runtime and
feeds it synthetic load, to exercise the scheduler, mailbox backpressure,
and fault isolation behaviors from the command line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("actorctl: building logger: %w", err)
		}
		logger = l
		return nil
	},
}

// Execute runs the CLI, returning the first error encountered.
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./actorctl.yaml)")

	rootCmd.PersistentFlags().Int("workers", 4, "worker goroutine count")
	rootCmd.PersistentFlags().Int("run-queue-capacity", 256, "run queue capacity")
	rootCmd.PersistentFlags().Int("mailbox-capacity", 32, "default per-actor mailbox capacity")

	_ = viper.BindPFlag("worker_count", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("run_queue_capacity", rootCmd.PersistentFlags().Lookup("run-queue-capacity"))
	_ = viper.BindPFlag("mailbox_capacity", rootCmd.PersistentFlags().Lookup("mailbox-capacity"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("actorctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("actorctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// A missing config file is not an error: flags and env defaults carry
	// the run. Every read error is ignored, a malformed file included: the
	// run then proceeds on flags, env and flag defaults alone, and no error
	// is reported for the file.
	_ = viper.ReadInConfig()
}
