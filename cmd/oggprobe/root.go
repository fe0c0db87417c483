package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// commandContext carries the loaded configuration into subcommands.
type commandContext struct {
	config Config
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool

	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "oggprobe",
		Short:         "Inspect and rewrite Ogg audio streams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			cfg, err := loadConfig(configFlag)
			if err != nil {
				return err
			}
			ctx.config = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newInfoCommand(ctx))
	rootCmd.AddCommand(newPagesCommand(ctx))
	rootCmd.AddCommand(newTagsCommand(ctx))
	rootCmd.AddCommand(newRenumberCommand(ctx))

	return rootCmd
}
