// Package cmd implements the seaport command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-seaport/config"
	"go-seaport/port"
	"go-seaport/service"
	"go-seaport/version"
)

// Version is set by main.
var Version = "dev"

var (
	configDir string
	profile   string
	debug     bool
	yesAll    bool

	rootCmd = &cobra.Command{
		Use:   "seaport",
		Short: "The modern MacPorts portfile updater",
		Long: `seaport bumps the version and checksums of a MacPorts port, optionally
tests, lints and installs the result, and copies the new Portfile to the
clipboard or sends it upstream as a pull request.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "C", "", "Config base directory")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Profile to use")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Debug verbosity")
	rootCmd.PersistentFlags().BoolVarP(&yesAll, "yes", "y", false, "Answer yes to all prompts")

	rootCmd.AddCommand(clipCmd, prCmd, historyCmd, logsCmd, initCmd, versionCmd, completionCmd)
}

// Execute runs the command line and returns the process exit code.
func Execute(v string) int {
	Version = v
	err := rootCmd.ExecuteContext(context.Background())
	return exitCode(err)
}

// exitCode reports err to the user and maps it to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, version.ErrUpToDate):
		fmt.Fprintln(os.Stderr, err)
		return 1
	case errors.Is(err, port.ErrUserDeclined):
		fmt.Fprintf(os.Stderr, "Cancelled: %v\n", err)
		return 1
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply command-line overrides
	if debug {
		cfg.Debug = true
	}
	if yesAll {
		cfg.YesAll = true
	}
	return cfg, nil
}

func newService() (*service.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return service.NewService(cfg)
}
