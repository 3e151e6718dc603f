package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration read from sqlscript.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(false)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(opts.Config)
			if err != nil {
				return errors.Wrap(err, "encoding configuration")
			}
			fmt.Print(string(out))
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)
}
