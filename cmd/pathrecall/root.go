package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathrecall",
	Short: "pathrecall records the path of moving bodies and replays it in reverse",
	Long: `pathrecall samples the trajectory of a body at a fixed cadence while it moves, forgets it
slowly while the body idles and drives the body back along it on request.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.toml", "Path of the TOML settings file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// newLogger creates the logger shared by all commands.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
