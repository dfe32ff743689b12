package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
)

const version = "0.4.0"

func getBuildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath  string
	catalog     string
	logLevel    string
	variant     string
	randSeed    uint64
	hasRandSeed bool
	versionFlag bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "nouns-composer",
		Short:         "Compose noun and mfer seeds from trait catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.hasRandSeed = cmd.Flags().Changed("rand-seed")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.versionFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "nouns-composer %s\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", getBuildTimestamp())
				return nil
			}
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config.toml (defaults to the user config directory)")
	flags.StringVarP(&opts.catalog, "catalog", "c", "", "Catalog name from config, or a path to a catalog file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.variant, "variant", "", "Seed variant: basic or extended (defaults to the catalog's)")
	flags.Uint64Var(&opts.randSeed, "rand-seed", 0, "Seed the random source for reproducible output")
	rootCmd.Flags().BoolVarP(&opts.versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(
		newCatalogCmd(opts),
		newSeedCmd(opts),
		newNounCmd(opts),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
