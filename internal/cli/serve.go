package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/supertictactoe-backend/internal"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/config"
)

func NewServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket game servers",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}

			if err = app.RunApp(initLogger(conf), conf); err != nil {
				return WrapExitError(ExitFailure, "app run failed", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "./config.yml", "path to the config file")

	return cmd
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
