package addrfmt

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

const (
	componentsFile = "components.yaml"
	worldwideFile  = "countries/worldwide.yaml"
	defaultKey     = "default"
)

// ComponentDef is one entry of components.yaml.
type ComponentDef struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// RuleBlock is one entry of worldwide.yaml: the default block or a country
// block. Replace entries are [pattern, replacement] pairs.
type RuleBlock struct {
	AddressTemplate   string     `yaml:"address_template"`
	FallbackTemplate  string     `yaml:"fallback_template"`
	Replace           [][]string `yaml:"replace"`
	PostformatReplace [][]string `yaml:"postformat_replace"`
	UseCountry        string     `yaml:"use_country"`
	ChangeCountry     string     `yaml:"change_country"`
	AddComponent      string     `yaml:"add_component"`
}

// RuleSet is the parsed, not yet compiled, rule database.
type RuleSet struct {
	Components []ComponentDef
	// Default is the "default" block.
	Default *RuleBlock
	// Countries holds every block whose key is a valid country code, keyed by
	// the normalized code.
	Countries map[CountryCode]RuleBlock
	// Order lists the country keys in file order.
	Order []CountryCode
}

// LoadRules reads components.yaml and countries/worldwide.yaml from fsys.
func LoadRules(fsys fs.FS) (*RuleSet, error) {
	comps, err := readComponents(fsys)
	if err != nil {
		return nil, err
	}
	rs := &RuleSet{Components: comps}
	if err := readWorldwide(fsys, rs); err != nil {
		return nil, err
	}
	return rs, nil
}

func readComponents(fsys fs.FS) ([]ComponentDef, error) {
	f, err := fsys.Open(componentsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, componentsFile, err)
	}
	defer f.Close()

	var out []ComponentDef
	dec := yaml.NewDecoder(f)
	for {
		var def ComponentDef
		err := dec.Decode(&def)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, componentsFile, err)
		}
		if def.Name == "" {
			return nil, fmt.Errorf("%w: %s: component without a name", ErrInvalidConfig, componentsFile)
		}
		out = append(out, def)
	}
	return out, nil
}

func readWorldwide(fsys fs.FS, rs *RuleSet) error {
	data, err := fs.ReadFile(fsys, worldwideFile)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, worldwideFile, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, worldwideFile, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %s: top level must be a mapping", ErrInvalidConfig, worldwideFile)
	}

	// Keys that are neither "default" nor a country code only carry anchors
	// (generic1, fallback1, ...) and are skipped without decoding.
	rs.Countries = make(map[CountryCode]RuleBlock)
	top := doc.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i].Value, top.Content[i+1]
		if key == defaultKey {
			var block RuleBlock
			if err := val.Decode(&block); err != nil {
				return fmt.Errorf("%w: %s: %s: %w", ErrInvalidConfig, worldwideFile, key, err)
			}
			rs.Default = &block
			continue
		}
		cc, err := ParseCountryCode(key)
		if err != nil {
			continue
		}
		var block RuleBlock
		if err := val.Decode(&block); err != nil {
			return fmt.Errorf("%w: %s: %s: %w", ErrInvalidConfig, worldwideFile, key, err)
		}
		if _, dup := rs.Countries[cc]; dup {
			return fmt.Errorf("%w: %s: duplicate country %s", ErrInvalidConfig, worldwideFile, cc)
		}
		rs.Countries[cc] = block
		rs.Order = append(rs.Order, cc)
	}
	return nil
}
