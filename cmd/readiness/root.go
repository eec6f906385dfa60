package main

import (
	"github.com/spf13/cobra"

	"github.com/joelkehle/aireadiness/internal/config"
)

type rootFlags struct {
	configFile string
	envFile    string
}

func (f *rootFlags) load() (*config.Config, error) {
	var opts []config.Option
	if f.configFile != "" {
		opts = append(opts, config.WithFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	return config.Load(opts...)
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:           "readiness",
		Short:         "AI readiness assessment and report generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Dotenv file to load before the environment")

	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newGenerateCommand(flags))
	rootCmd.AddCommand(newScoreCommand(flags))
	return rootCmd
}
