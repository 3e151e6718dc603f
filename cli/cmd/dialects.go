package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vippsas/sqlscript/sqlparser/dialect"
)

var (
	dsn string

	dialectsCmd = &cobra.Command{
		Use:   "dialects",
		Short: "Lists the known dialects, including those declared in sqlscript.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			// registers the custom dialects
			if _, err := loadOptions(false); err != nil {
				return err
			}
			if dsn != "" {
				d, err := dialect.ForDSN(dsn)
				if err != nil {
					return err
				}
				fmt.Println(d.Name)
				return nil
			}
			for _, name := range dialect.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}
)

func init() {
	dialectsCmd.Flags().StringVar(&dsn, "dsn", "", "print the dialect of a connection string instead, e.g. sqlserver://host?database=db")
	rootCmd.AddCommand(dialectsCmd)
}
