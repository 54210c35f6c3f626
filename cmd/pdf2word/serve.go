package main

import (
	"fmt"

	"pdf2word/internal/app"
	"pdf2word/internal/config"

	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversion service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	cfg, err := config.MustLoad()
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("Failed to load config")
		return err
	}

	application, err := app.NewApp(cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("Failed to create app")
		return fmt.Errorf("failed to create app: %w", err)
	}

	if err := application.Run(); err != nil {
		zlog.Logger.Error().Err(err).Msg("Server failed")
		return err
	}

	zlog.Logger.Info().Msg("Server exited successfully")
	return nil
}
