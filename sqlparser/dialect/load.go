package dialect

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// header holds the keys read before the full decode of a dialect node.
type header struct {
	Name    string `yaml:"name"`
	Extends string `yaml:"extends"`
}

// Parse reads a YAML list of dialect descriptors. An entry may name a
// registered dialect under `extends`; keys it leaves out are inherited.
//
//	- name: warehouse
//	  extends: postgresql
//	  delimiters: [";", "\\g"]
func Parse(data []byte) ([]*Dialect, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, errors.Wrap(err, "parsing dialect descriptors")
	}
	return Decode(nodes)
}

// Decode builds dialects from already parsed YAML nodes; see Parse.
func Decode(nodes []yaml.Node) ([]*Dialect, error) {
	result := make([]*Dialect, 0, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		var h header
		if err := node.Decode(&h); err != nil {
			return nil, errors.Wrapf(err, "dialect #%d", i+1)
		}
		if h.Name == "" {
			return nil, errors.Errorf("dialect #%d (line %d): missing name", i+1, node.Line)
		}

		d := &Dialect{}
		if h.Extends != "" {
			base, err := Lookup(h.Extends)
			if err != nil {
				return nil, errors.Wrapf(err, "dialect %s", h.Name)
			}
			d = base
		}
		if err := node.Decode(d); err != nil {
			return nil, errors.Wrapf(err, "dialect %s", h.Name)
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

// LoadFile parses the descriptors in path and registers them.
func LoadFile(path string) ([]*Dialect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	dialects, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	for _, d := range dialects {
		Register(d)
	}
	return dialects, nil
}

// Validate checks the invariants the tokenizer relies on.
func (d *Dialect) Validate() error {
	if d.Name == "" {
		return errors.New("dialect without name")
	}
	for _, delim := range d.Delimiters {
		if delim == "" {
			return errors.Errorf("dialect %s: empty delimiter", d.Name)
		}
	}
	if len([]rune(d.AnonymousParameterMark)) > 1 {
		return errors.Errorf("dialect %s: anonymous parameter mark %q must be a single character", d.Name, d.AnonymousParameterMark)
	}
	return nil
}
