// Package cmd implements the quadmesh command line interface.
package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quadmesh/pkg/config"
	"github.com/quadmesh/pkg/telemetry"
	"github.com/quadmesh/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger utils.Logger

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quadmesh",
	Short: "Adaptive quadtree mesh toolkit",
	Long: `quadmesh is a CLI for working with forests of adaptive quadtrees.

It reads connectivity from ASCII mesh files and runs the quadrant-level
algorithms of the library, such as completing the region between two
quadrants into a minimal gap-free tiling.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		logLevel := utils.ParseLogLevel(cfg.Log.Level)
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)
		utils.SetGlobalLogger(logger)

		if cfg.Telemetry.Enabled {
			shutdown, err := telemetry.Init(cmd.Context())
			if err != nil {
				logger.Warn("Failed to initialize telemetry: %v", err)
			} else {
				telemetryShutdown = shutdown
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			return telemetryShutdown(context.Background())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	binName := BinName()
	rootCmd.Example = `  # Parse a mesh file and log its topology
  ` + binName + ` mesh read ./meshes/unit.msh

  # Re-emit a mesh file in canonical form
  ` + binName + ` mesh read ./meshes/unit.msh --print

  # Tile the region between two quadrants
  ` + binName + ` complete --a-level 2 --a-id 0 --b-level 2 --b-id 15`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}
