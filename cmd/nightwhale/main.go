package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=..."
var version = "0.0.0-dev"

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var configFile string
	rootCmd := &cobra.Command{
		Use:   "nightwhale",
		Short: "A whale swimming through a twinkling night sky",
		Long:  `Nightwhale animates a segmented whale drifting through a field of stars, in the terminal or as PNG frames`,
		// Bare invocation runs the animation
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			return runAnimation(cmd, configFile, watch)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to TOML config file")
	defineRunFlags(rootCmd)

	rootCmd.AddCommand(
		runCommand(&configFile),
		snapshotCommand(&configFile),
		configCommand(&configFile),
		versionCommand(),
	)
	return rootCmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Nightwhale version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}
