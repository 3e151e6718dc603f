package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

var (
	dump bool

	splitCmd = &cobra.Command{
		Use:   "split [file...]",
		Short: "Split scripts into the statements and control commands that would be executed, separated by ===",
		RunE: func(cmd *cobra.Command, args []string) error {
			scripts, err := loadScripts(args, false)
			if err != nil {
				return err
			}
			for _, s := range scripts.Scripts {
				if dump {
					repr.Println(s.Elements, repr.Indent("  "), repr.OmitEmpty(true))
					continue
				}
				for _, e := range s.Elements {
					pos := s.Pos(e.Bounds().Offset)
					if c, ok := e.(*sqldocument.ControlCommand); ok {
						fmt.Printf("-- %s: command %s\n", pos, c.CommandID)
					} else {
						fmt.Printf("-- %s\n", pos)
					}
					fmt.Println(e.Source())
					fmt.Println("===")
				}
			}
			return nil
		},
	}
)

func init() {
	splitCmd.Flags().BoolVar(&dump, "dump", false, "dump the parsed elements as Go values")
	rootCmd.AddCommand(splitCmd)
}
