package main

import (
	"os"

	"github.com/mycelian/tool-catalog/internal/config"
	"github.com/mycelian/tool-catalog/toolservice"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("tool-service exited with error")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		port     int
		dataFile string
	)
	cmd := &cobra.Command{
		Use:           "tool-service",
		Short:         "Serve the tool catalog document over HTTP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, port, dataFile)
			if err != nil {
				return err
			}
			return toolservice.Run(cfg)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override TOOLS_SERVER_HTTP_PORT")
	cmd.Flags().StringVarP(&dataFile, "data-file", "f", "", "Override TOOLS_SERVER_DATA_FILE (relative to the binary unless absolute)")
	return cmd
}

// loadConfig reads the environment, then applies any flags the user set.
func loadConfig(cmd *cobra.Command, port int, dataFile string) (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("port") {
		cfg.HTTPPort = port
	}
	if cmd.Flags().Changed("data-file") {
		cfg.DataFile = dataFile
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}
