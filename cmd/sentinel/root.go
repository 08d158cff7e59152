package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hollow-host/sentinel/pkg/sentinel/config"
	"github.com/hollow-host/sentinel/pkg/sentinel/logging"
)

var (
	flagOutputRoot string
	flagQuiet      bool
	flagNoAdvice   bool
	flagJSON       bool
	flagVerbose    bool

	appConfig *config.AppConfig
	appCtx    config.Context
)

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "Host-based file-integrity monitor",
	Long: `Sentinel records a tamper-evident baseline of a directory tree and
reports drift against it on demand or on a schedule.

Examples:
  sentinel init ~/critical-configs          # record a baseline
  sentinel scan ~/critical-configs --strict # compare against it
  sentinel watch ~/critical-configs -i 60 -c 10 # 10 checks, 60s apart
  sentinel doctor                           # check the environment`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagOutputRoot, "output-root", "", "override the output directory for this invocation")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&flagNoAdvice, "no-advice", false, "suppress the guidance block after an operation")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "emit machine-readable JSON instead of styled text")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug-level logging to the console")

	_ = viper.BindPFlag("output_root", rootCmd.PersistentFlags().Lookup("output-root"))
}

// bootstrap resolves the output root, builds the derived path Context,
// loads the app config, and wires up logging. It runs once before every
// subcommand.
func bootstrap(cmd *cobra.Command, args []string) error {
	fallback, err := os.UserHomeDir()
	if err != nil {
		fallback = "."
	}
	fallback = fallback + "/.sentinel"

	root := flagOutputRoot
	if root == "" {
		root, err = config.LoadOutputRoot(fallback)
		if err != nil {
			return fmt.Errorf("resolve output root: %w", err)
		}
	}
	appCtx = config.NewContext(root)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load app config: %w", err)
	}
	appConfig = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Path = appCtx.LogFile
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	logCfg.Rotation.MaxSizeMB = cfg.Logging.MaxSizeMB
	logCfg.Rotation.MaxAgeDays = cfg.Logging.MaxAgeDays
	logCfg.Rotation.MaxBackups = cfg.Logging.MaxBackups
	if flagVerbose {
		logCfg.ConsoleLevel = "debug"
	}
	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func adviceEnabled() bool {
	if flagNoAdvice {
		return false
	}
	return appConfig == nil || appConfig.Advice
}
