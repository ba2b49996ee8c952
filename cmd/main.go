package main

import (
	"fmt"
	"os"

	"github.com/popcornroulette/api/internal/config"
	"github.com/popcornroulette/api/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "popcorn-roulette",
	Short: "Popcorn Roulette serves a filterable movie catalog imported from TMDB",
	Long: `Popcorn Roulette imports movie metadata from TMDB into PostgreSQL and
serves random-pick, count and list queries over the catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Popcorn Roulette",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Popcorn Roulette v1.0.0")
	},
}

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./config.yml)")
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scrapeCmd)
}

func initConfig() {
	// Skip config loading for version command
	if len(os.Args) > 1 && os.Args[1] == "version" {
		return
	}

	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Get()
	logger.InitializeLoggers(cfg.Logging.Level, cfg.Logging.Level)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
