// Package cmd holds the ltes command line.
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ltes/config"
)

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "ltes",
	Short: "Encapsulated latent thermal energy storage simulator",
	Long: `
Simulates packed beds of encapsulated phase-change material: the heat transfer
fluid advected along the pipe, coupled to the enthalpy of every capsule.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		switch {
		case err == nil:
			cfg = c
		case cmd.Flags().Changed("config") || !errors.Is(err, os.ErrNotExist):
			return err
		default:
			cfg = config.Default()
			log.WithField("path", path).Debug("no config file, using defaults")
		}
		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level, _ = cmd.Flags().GetString("log-level")
		}
		l, err := log.ParseLevel(level)
		if err != nil {
			return err
		}
		log.SetLevel(l)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "ini configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
}

// Execute runs the command line until it finishes or is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
