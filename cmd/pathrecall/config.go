package main

import (
	"fmt"
	"os"

	"github.com/oomph-ac/pathrecall/oerror"
	"github.com/oomph-ac/pathrecall/settings"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the default settings to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return oerror.New("config file %s already exists, use --force to overwrite it", path)
		}
		if err := settings.Save(path, settings.DefaultSettings()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote default settings to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(configCmd)
}
