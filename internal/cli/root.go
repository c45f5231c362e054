// Package cli implements the newslens command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"NewsLens/internal/app"
	"NewsLens/internal/config"
)

var configPath string

// newApplication is swapped in tests.
var newApplication = func(cfg config.Config, opts ...app.Option) (*app.Application, error) {
	return app.New(cfg, nil, opts...)
}

var rootCmd = &cobra.Command{
	Use:   "newslens",
	Short: "Read deduplicated, sentiment-filtered news",
	Long: `newslens loads a news listing, removes duplicate stories and lets you
filter them by sentiment and search text. Selecting a story shows an
immediate preview and then the full article once it arrives.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (defaults to $NEWSLENS_CONFIG)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.LoadPath(configPath)
	}
	return config.Load()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// shutdown delivers pending notifications before the process exits.
func shutdown(cmd *cobra.Command, application *app.Application) {
	if err := application.Close(context.WithoutCancel(commandContext(cmd))); err != nil {
		cmd.PrintErrln("Some notifications could not be delivered.")
	}
}
