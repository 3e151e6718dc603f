package sqlscript

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/vippsas/sqlscript/sqlparser"
	"github.com/vippsas/sqlscript/sqlparser/dialect"
	"gopkg.in/yaml.v3"
)

const ConfigFileName = "sqlscript.yaml"

// Config holds the preferences read from sqlscript.yaml.
//
//	dialect: postgresql
//	blank_line_delimiter: true
//	parameters:
//	  in_ddl: true
//	commands: [connect]
//	dialects:
//	  - name: warehouse
//	    extends: postgresql
//	    delimiters: [";", "\\g"]
type Config struct {
	Dialect            string           `yaml:"dialect"`
	BlankLineDelimiter bool             `yaml:"blank_line_delimiter"`
	KeepDelimiters     bool             `yaml:"keep_delimiters"`
	Parameters         ParametersConfig `yaml:"parameters"`
	Commands           []string         `yaml:"commands"`
	Dialects           []yaml.Node      `yaml:"dialects"`
}

type ParametersConfig struct {
	Enabled       bool   `yaml:"enabled"`
	InDDL         bool   `yaml:"in_ddl"`
	Variables     bool   `yaml:"variables"`
	AnonymousMark string `yaml:"anonymous_mark"`
}

func DefaultConfig() Config {
	return Config{
		Parameters: ParametersConfig{
			Enabled:   true,
			Variables: true,
		},
	}
}

// LoadConfig reads sqlscript.yaml from dir and registers the custom
// dialects it declares. A missing file gives DefaultConfig.
func LoadConfig(dir string) (Config, error) {
	configFilename := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configFilename)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	} else if err != nil {
		return Config{}, errors.Wrapf(err, "reading %s", configFilename)
	}
	result, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrap(err, configFilename)
	}
	if _, err := result.RegisterDialects(); err != nil {
		return Config{}, errors.Wrap(err, configFilename)
	}
	return result, nil
}

// ParseConfig decodes a preferences document on top of DefaultConfig,
// so keys left out keep their defaults. Custom dialects are checked but
// not registered; see RegisterDialects.
func ParseConfig(data []byte) (Config, error) {
	result := DefaultConfig()
	if err := yaml.Unmarshal(data, &result); err != nil {
		return Config{}, errors.Wrap(err, "parsing configuration")
	}
	if utf8.RuneCountInString(result.Parameters.AnonymousMark) > 1 {
		return Config{}, errors.Errorf("parameters.anonymous_mark %q must be a single character", result.Parameters.AnonymousMark)
	}
	custom, err := result.CustomDialects()
	if err != nil {
		return Config{}, err
	}
	if result.Dialect != "" && !declares(custom, result.Dialect) {
		if _, err := dialect.Lookup(result.Dialect); err != nil {
			return Config{}, err
		}
	}
	return result, nil
}

func declares(dialects []*dialect.Dialect, name string) bool {
	for _, d := range dialects {
		if strings.EqualFold(d.Name, name) {
			return true
		}
	}
	return false
}

// CustomDialects decodes the dialects declared under `dialects:`.
func (c Config) CustomDialects() ([]*dialect.Dialect, error) {
	return dialect.Decode(c.Dialects)
}

// RegisterDialects makes the custom dialects known to dialect.Lookup,
// replacing registered dialects of the same name.
func (c Config) RegisterDialects() ([]*dialect.Dialect, error) {
	dialects, err := c.CustomDialects()
	if err != nil {
		return nil, err
	}
	for _, d := range dialects {
		dialect.Register(d)
	}
	return dialects, nil
}

// DefaultDialect is the configured dialect, or generic when none is set.
func (c Config) DefaultDialect() (*dialect.Dialect, error) {
	if c.Dialect == "" {
		return dialect.Lookup(dialect.Generic.Name)
	}
	return dialect.Lookup(c.Dialect)
}

// ParseConfig builds the parser configuration for scripts in d.
func (c Config) ParseConfig(d *dialect.Dialect) sqlparser.ParseConfig {
	cfg := sqlparser.DefaultConfig(d)
	cfg.BlankLineIsDelimiter = c.BlankLineDelimiter
	cfg.ParametersEnabled = c.Parameters.Enabled
	cfg.SupportParamsInDDL = c.Parameters.InDDL
	cfg.VariablesEnabled = c.Parameters.Variables
	if r, _ := utf8.DecodeRuneInString(c.Parameters.AnonymousMark); r != utf8.RuneError {
		cfg.AnonymousParameterMark = r
	}
	return cfg
}

// CommandRegistry returns the default control commands plus the
// configured ones.
func (c Config) CommandRegistry() *sqlparser.CommandRegistry {
	r := sqlparser.NewCommandRegistry()
	for _, id := range c.Commands {
		r.Register(sqlparser.Command{ID: id})
	}
	return r
}
