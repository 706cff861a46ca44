package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ruby-gems/metka/cmd/metka/cmd/migration"
	"github.com/ruby-gems/metka/common/log"
)

var (
	logLevel  string
	logFormat string
)

var RootCmd = &cobra.Command{
	Use:          "metka",
	Short:        "tag-column search toolkit for Postgres array columns",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "set log level to debug, info, warn, error or fatal (case-insensitive). default is INFO")
	RootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "json", "set log format to json or text. default is json")
	RootCmd.DisableAutoGenTag = true

	cobra.OnInitialize(func() {
		log.Setup(logLevel, logFormat)
	})

	RootCmd.AddCommand(
		migration.Cmd,
	)
}
