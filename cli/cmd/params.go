package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	paramsCmd = &cobra.Command{
		Use:   "params [file...]",
		Short: "Print the parameters and ${variables} each statement would be bound with",
		RunE: func(cmd *cobra.Command, args []string) error {
			scripts, err := loadScripts(args, false)
			if err != nil {
				return err
			}
			for _, s := range scripts.Scripts {
				for _, stmt := range s.Statements() {
					for _, p := range stmt.Parameters {
						pos := s.Pos(stmt.Offset + p.Offset)
						kind := "anonymous"
						if p.Named {
							kind = "named"
						}
						line := fmt.Sprintf("%s: %s #%d %s", pos, p.Text, p.Ordinal, kind)
						if p.Previous != nil {
							line += fmt.Sprintf(" (same as #%d)", p.Previous.Ordinal)
						}
						fmt.Println(line)
					}
				}
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(paramsCmd)
}
