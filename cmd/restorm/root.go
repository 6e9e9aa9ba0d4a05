package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
	baseURL    string
	format     string
	dryRun     bool
	paramFlags []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "restorm",
	Short: "Read and write REST resources declared in restorm.yaml",
	Long: `restorm maps resource declarations onto a RESTful API.
Objects without identifier are created with POST, objects with one are updated with PUT.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: restorm.yaml in the project root)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API root, overrides the config file")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Wire format: json or xml")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the request instead of sending it")
	rootCmd.PersistentFlags().StringArrayVarP(&paramFlags, "param", "p", nil, "Query parameter as key=value (repeatable)")
}
