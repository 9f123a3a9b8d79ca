package addrfmt

import (
	"fmt"
	"regexp"
	"strings"
)

// buildAliases maps every alias to its canonical component.
func buildAliases(defs []ComponentDef) (map[string]Component, error) {
	aliases := make(map[string]Component)
	for _, def := range defs {
		c, ok := ParseComponent(def.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a valid component", ErrInvalidConfig, def.Name)
		}
		for _, a := range def.Aliases {
			if prev, dup := aliases[a]; dup && prev != c {
				return nil, fmt.Errorf("%w: alias %q maps to both %s and %s", ErrInvalidConfig, a, prev, c)
			}
			aliases[a] = c
		}
	}
	return aliases, nil
}

// buildTemplates compiles the rule set into a registry. Countries declaring
// use_country are resolved in a second pass, once every concrete template
// exists, and may only inherit from a concrete one.
func buildTemplates(rs *RuleSet, engine Engine) (*Templates, error) {
	if rs.Default == nil {
		return nil, fmt.Errorf("%w: no default block", ErrInvalidConfig)
	}
	if rs.Default.AddressTemplate == "" {
		return nil, fmt.Errorf("%w: no default address_template provided", ErrInvalidConfig)
	}
	if rs.Default.FallbackTemplate == "" {
		return nil, fmt.Errorf("%w: no default fallback_template provided", ErrInvalidConfig)
	}

	def, err := compileSource(engine, "default", rs.Default.AddressTemplate)
	if err != nil {
		return nil, err
	}
	fb, err := compileSource(engine, "default fallback", rs.Default.FallbackTemplate)
	if err != nil {
		return nil, err
	}

	ts := &Templates{
		Default:   def,
		Fallback:  fb,
		ByCountry: make(map[CountryCode]*Template, len(rs.Countries)),
	}

	var deferred []CountryCode
	for _, cc := range rs.Order {
		block := rs.Countries[cc]
		if block.UseCountry != "" {
			deferred = append(deferred, cc)
			continue
		}
		tmpl, err := compileBlock(engine, cc, block)
		if err != nil {
			return nil, err
		}
		ts.ByCountry[cc] = tmpl
	}

	for _, cc := range deferred {
		tmpl, err := inherit(ts, cc, rs.Countries[cc], rs.Countries)
		if err != nil {
			return nil, err
		}
		ts.ByCountry[cc] = tmpl
	}
	return ts, nil
}

func compileSource(engine Engine, name, source string) (*Template, error) {
	r, err := engine.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s template: %w", ErrInvalidConfig, name, err)
	}
	return &Template{Source: source, render: r}, nil
}

func compileBlock(engine Engine, cc CountryCode, block RuleBlock) (*Template, error) {
	if block.AddressTemplate == "" {
		return nil, fmt.Errorf("%w: no address_template found for country %s", ErrInvalidConfig, cc)
	}
	tmpl, err := compileSource(engine, cc.String(), block.AddressTemplate)
	if err != nil {
		return nil, err
	}
	if tmpl.Replace, err = compileRules(cc, "replace", block.Replace, true); err != nil {
		return nil, err
	}
	if tmpl.PostformatReplace, err = compileRules(cc, "postformat_replace", block.PostformatReplace, false); err != nil {
		return nil, err
	}
	if err := overlay(tmpl, cc, block); err != nil {
		return nil, err
	}
	if block.FallbackTemplate != "" {
		fb, err := compileSource(engine, cc.String()+" fallback", block.FallbackTemplate)
		if err != nil {
			return nil, err
		}
		tmpl.FallbackSource = block.FallbackTemplate
		tmpl.fallback = withRenderer(tmpl, fb.Source, fb.render)
	}
	return tmpl, nil
}

// inherit copies the parent's compiled template and overlays the child's
// change_country and add_component. The parent's change_country is dropped;
// its add_component is kept unless the child sets its own.
func inherit(ts *Templates, cc CountryCode, block RuleBlock, blocks map[CountryCode]RuleBlock) (*Template, error) {
	parentCode, err := ParseCountryCode(block.UseCountry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: use_country: %w", ErrInvalidConfig, cc, err)
	}
	if parentCode == cc {
		return nil, fmt.Errorf("%w: %s: use_country refers to itself", ErrInvalidConfig, cc)
	}
	if pb, ok := blocks[parentCode]; ok && pb.UseCountry != "" {
		return nil, fmt.Errorf("%w: %s: use_country %s also inherits (from %s)", ErrInvalidConfig, cc, parentCode, pb.UseCountry)
	}
	parent, ok := ts.ByCountry[parentCode]
	if !ok {
		return nil, fmt.Errorf("%w: %s: use_country %s is not defined", ErrInvalidConfig, cc, parentCode)
	}

	tmpl := *parent
	tmpl.ChangeCountry = ""
	if err := overlay(&tmpl, cc, block); err != nil {
		return nil, err
	}
	if parent.fallback != nil {
		tmpl.fallback = withRenderer(&tmpl, parent.FallbackSource, parent.fallback.render)
	}
	return &tmpl, nil
}

// withRenderer returns a copy of t that keeps every rule of t but renders
// source with r.
func withRenderer(t *Template, source string, r Renderer) *Template {
	cp := *t
	cp.Source = source
	cp.render = r
	cp.fallback = nil
	return &cp
}

func overlay(tmpl *Template, cc CountryCode, block RuleBlock) error {
	if block.ChangeCountry != "" {
		tmpl.ChangeCountry = block.ChangeCountry
	}
	if block.AddComponent != "" {
		name, value, ok := strings.Cut(block.AddComponent, "=")
		if !ok {
			return fmt.Errorf("%w: %s: add_component %q must be component=value", ErrInvalidConfig, cc, block.AddComponent)
		}
		c, ok := ParseComponent(name)
		if !ok {
			return fmt.Errorf("%w: %s: add_component: %q is not a valid component", ErrInvalidConfig, cc, name)
		}
		tmpl.AddComponent = &ComponentValue{Component: c, Value: value}
	}
	return nil
}

// compileRules compiles [pattern, replacement] pairs. When scoping is allowed,
// a pattern of the form "component=regex" only applies to that component.
func compileRules(cc CountryCode, field string, raw [][]string, scoping bool) ([]ReplaceRule, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	rules := make([]ReplaceRule, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: %s: %s[%d]: want [pattern, replacement], got %d values", ErrInvalidConfig, cc, field, i, len(pair))
		}
		var rule ReplaceRule
		pattern := pair[0]
		if scoping {
			if name, rest, ok := strings.Cut(pattern, "="); ok {
				c, known := ParseComponent(name)
				if !known {
					return nil, fmt.Errorf("%w: %s: %s[%d]: %q is not a valid component", ErrInvalidConfig, cc, field, i, name)
				}
				rule.Scoped, rule.Component, pattern = true, c, rest
			}
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s[%d]: %w", ErrInvalidConfig, cc, field, i, err)
		}
		rule.Pattern = re
		rule.Replacement = pair[1]
		rules = append(rules, rule)
	}
	return rules, nil
}
