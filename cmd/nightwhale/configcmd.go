package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/nightwhale/config"
)

func configCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long:  `Print defaults merged with the config file and flags, ready to save and edit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(cmd, *configFile)
			if err != nil {
				return err
			}
			b, err := conf.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	config.DefineFlags(cmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(nil, *configFile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config ok")
			return nil
		},
	})
	return cmd
}
