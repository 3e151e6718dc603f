package sqlscript

import (
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlscript/sqlparser"
	"github.com/vippsas/sqlscript/sqlparser/dialect"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

type Options struct {
	Config      Config
	IncludeTags []string
	Logger      logrus.FieldLogger

	// if this is set, pragma errors are returned in the result instead of
	// failing the whole include
	PartialParseResults bool
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// Script is one split script file.
type Script struct {
	File     sqldocument.FileRef
	Dialect  *dialect.Dialect
	Pragmas  Pragmas
	Text     string
	Elements []sqldocument.ScriptElement
}

// Statements returns the statements of the script, leaving out control
// commands.
func (s Script) Statements() (result []*sqldocument.Statement) {
	for _, e := range s.Elements {
		if stmt, ok := e.(*sqldocument.Statement); ok {
			result = append(result, stmt)
		}
	}
	return
}

// Pos returns the line/column position of an offset in the script.
func (s Script) Pos(offset int) sqldocument.Pos {
	return sqldocument.PosAt(s.File, sqldocument.NewBuffer(s.Text), offset)
}

type Scripts struct {
	ParsedFiles []string // mainly for use in error messages etc
	Scripts     []Script
	Errors      []sqldocument.Error
}

// ParseString splits a single script. The dialect comes from the
// `--sqlscript:dialect` pragma, then the file extension, then the
// configured default.
func ParseString(opts Options, file sqldocument.FileRef, input string) (Script, []sqldocument.Error) {
	pragmas, errs := ParsePragmas(file, input)
	d, err := scriptDialect(opts.Config, string(file), pragmas)
	if err != nil {
		errs = append(errs, sqldocument.Error{
			Pos:     sqldocument.Pos{File: file, Line: 1, Col: 1},
			Message: err.Error(),
		})
		d, _ = opts.Config.DefaultDialect()
		if d == nil {
			d = dialect.Generic
		}
	}

	log := opts.logger().WithField("file", file)
	p := sqlparser.NewParser(opts.Config.ParseConfig(d),
		sqlparser.WithLogger(log),
		sqlparser.WithCommands(opts.Config.CommandRegistry()),
	)
	return Script{
		File:     file,
		Dialect:  p.Dialect(),
		Pragmas:  pragmas,
		Text:     input,
		Elements: p.ParseAll(input, 0, len(input), true, opts.Config.KeepDelimiters, true),
	}, errs
}

func scriptDialect(cfg Config, path string, pragmas Pragmas) (*dialect.Dialect, error) {
	if pragmas.Dialect != "" {
		return dialect.Lookup(pragmas.Dialect)
	}
	if d, err := dialect.ForFile(path); err == nil && d.Name != dialect.Generic.Name {
		return d, nil
	}
	return cfg.DefaultDialect()
}

// Include walks the filesystems for script files, in lexical order, and
// splits those whose include-if pragma matches opts.IncludeTags.
//
// err only reports problems reading the filesystems, duplicate files and,
// unless opts.PartialParseResults is set, pragma errors.
func Include(opts Options, fsys ...fs.FS) (result Scripts, err error) {
	// The same directory may easily be passed twice; treat files with the
	// same hash as an error.
	hashes := make(map[[32]byte]string)

	for fidx, f := range fsys {
		err = fs.WalkDir(f, ".",
			func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				// Skip over any hidden directories; in particular .git
				if (strings.HasPrefix(path, ".") && path != ".") || strings.Contains(path, "/.") {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if d.IsDir() || !dialect.IsScriptFile(path) {
					return nil
				}

				buf, err := fs.ReadFile(f, path)
				if err != nil {
					return errors.Wrapf(err, "reading %s", path)
				}

				pathDesc := fmt.Sprintf("fs[%d]:%s", fidx, path)
				hash := sha256.Sum256(buf)
				if existing, ok := hashes[hash]; ok {
					return DuplicateFileError{Path: pathDesc, Existing: existing}
				}
				hashes[hash] = pathDesc

				script, errs := ParseString(opts, sqldocument.FileRef(filepath.ToSlash(path)), string(buf))
				result.Errors = append(result.Errors, errs...)
				if !script.Pragmas.Matches(opts.IncludeTags) {
					opts.logger().WithFields(logrus.Fields{
						"file":       pathDesc,
						"include-if": script.Pragmas.IncludeIf,
					}).Debug("skipping script")
					return nil
				}
				result.ParsedFiles = append(result.ParsedFiles, pathDesc)
				result.Scripts = append(result.Scripts, script)
				return nil
			})
		if err != nil {
			return
		}
	}

	if len(result.Errors) > 0 && !opts.PartialParseResults {
		return Scripts{}, PragmaErrors{Errors: result.Errors}
	}
	return
}

func MustInclude(opts Options, fsys ...fs.FS) Scripts {
	result, err := Include(opts, fsys...)
	if err != nil {
		panic(err)
	}
	return result
}
