package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vippsas/sqlscript"
	"github.com/vippsas/sqlscript/cli/internal/argfs"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

func loadOptions(partialParseResults bool) (sqlscript.Options, error) {
	cfg, err := sqlscript.LoadConfig(directory)
	if err != nil {
		return sqlscript.Options{}, err
	}
	if dialectName != "" {
		cfg.Dialect = dialectName
	}
	return sqlscript.Options{
		Config:              cfg,
		IncludeTags:         tags,
		Logger:              logrus.StandardLogger(),
		PartialParseResults: partialParseResults,
	}, nil
}

// loadScripts splits the files named in args, or every script file under
// --directory when there are none.
func loadScripts(args []string, partialParseResults bool) (sqlscript.Scripts, error) {
	opts, err := loadOptions(partialParseResults)
	if err != nil {
		return sqlscript.Scripts{}, err
	}
	if len(args) == 0 {
		return sqlscript.Include(opts, os.DirFS(directory))
	}
	files, err := argfs.New(args...)
	if err != nil {
		return sqlscript.Scripts{}, err
	}
	return sqlscript.Include(opts, files)
}

func printErrors(errs []sqldocument.Error) {
	if len(errs) == 0 {
		return
	}
	fmt.Println("Errors:")
	for _, e := range errs {
		fmt.Printf("%s:%d:%d: %s\n", e.Pos.File, e.Pos.Line, e.Pos.Col, e.Message)
	}
	fmt.Println()
}

var (
	filesCmd = &cobra.Command{
		Use:   "files",
		Short: "Scan the directory tree and report which script files were discovered, in order, and their dialect",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				_ = cmd.Help()
				return errors.New("Too many arguments")
			}
			scripts, err := loadScripts(nil, true)
			if err != nil {
				return err
			}
			if len(scripts.Scripts) == 0 {
				fmt.Println("No script files found in given paths")
			}
			printErrors(scripts.Errors)
			for i, s := range scripts.Scripts {
				fmt.Printf("%s (%s): %d statements\n", scripts.ParsedFiles[i], s.Dialect.Name, len(s.Statements()))
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(filesCmd)
}
