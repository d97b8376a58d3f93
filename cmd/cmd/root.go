package cmd

import (
	"github.com/ostafen/envcarve/internal/env"
	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - embedded file container extraction tool",
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "minimum log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("log-file", "", "write a detailed log to the specified file")

	rootCmd.AddCommand(
		DefineUnpackCommand(),
		DefineListCommand(),
		DefineBundleCommand(),
		DefinePackCommand(),
		DefineFormatsCommand(),
		DefineMountCommand(),
		DefineWatchCommand(),
		DefineVerifyCommand(),
	)
	return rootCmd
}
