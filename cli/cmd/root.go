package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sqlscript",
		Short:        "sqlscript",
		SilenceUsage: true,
		Long:         `CLI tool for splitting SQL scripts into statements and control commands the way a SQL editor runs them. See README.md.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	directory   string
	tags        []string
	dialectName string
	logLevel    string
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "path to directory and subtree which will be scanned for script files; also where sqlscript.yaml is read from")
	rootCmd.PersistentFlags().StringSliceVarP(&tags, "tags", "t", nil, "include tags; affects files that are included through the include-if pragma")
	rootCmd.PersistentFlags().StringVar(&dialectName, "dialect", "", "default dialect, overriding sqlscript.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "logrus level: debug, info, warning, error")
	return rootCmd.Execute()
}
