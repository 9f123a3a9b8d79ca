package addrfmt

import (
	"regexp"
	"slices"
)

// ReplaceRule is a compiled pattern and the literal text that replaces its
// first match. A scoped rule touches only one component; a global rule
// touches every present component.
type ReplaceRule struct {
	Pattern     *regexp.Regexp
	Replacement string
	Scoped      bool
	Component   Component
}

// apply replaces the first match of the rule's pattern in s.
func (r ReplaceRule) apply(s string) string {
	loc := r.Pattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + r.Replacement + s[loc[1]:]
}

// ComponentValue is the "component=value" pair of an add_component directive.
type ComponentValue struct {
	Component Component
	Value     string
}

// Template is the complete rule set used to format one country's addresses.
// Templates are immutable once the registry is built; inherited countries
// share the parent's compiled renderers.
type Template struct {
	// Source is the raw address_template text.
	Source string
	// FallbackSource is the raw country-level fallback_template, if any.
	FallbackSource string

	Replace           []ReplaceRule
	PostformatReplace []ReplaceRule

	// ChangeCountry, when set, replaces the country component. A "$name"
	// token is substituted with that component's value.
	ChangeCountry string
	// AddComponent, when non-nil, sets one component to a literal value.
	AddComponent *ComponentValue

	render Renderer
	// fallback shares every rule of t but renders FallbackSource.
	fallback *Template
}

// HasFallback reports whether the template carries its own fallback_template.
func (t *Template) HasFallback() bool {
	return t.fallback != nil
}

// Templates is the rule registry: one default template, one fallback template
// and the country-specific templates, all fully resolved.
type Templates struct {
	Default   *Template
	Fallback  *Template
	ByCountry map[CountryCode]*Template
}

// Sufficient decides whether an address has enough components to use a
// country-specific template.
type Sufficient func(Address) bool

// HasRoadOrCity is the default sufficiency check.
func HasRoadOrCity(a Address) bool {
	return a.Has(Road) || a.Has(City)
}

// Select chooses the template for an address. An unknown country selects the
// default template; a known country with an insufficient address selects the
// fallback; otherwise the country's template is used when present.
func (ts *Templates) Select(cc CountryCode, addr Address, sufficient Sufficient) *Template {
	if !cc.Known() {
		return ts.Default
	}
	tmpl, ok := ts.ByCountry[cc]
	if sufficient == nil {
		sufficient = HasRoadOrCity
	}
	if !sufficient(addr) {
		if ok && tmpl.HasFallback() {
			return tmpl.fallback
		}
		return ts.Fallback
	}
	if !ok {
		return ts.Default
	}
	return tmpl
}

// Countries returns the registered country codes, sorted.
func (ts *Templates) Countries() []CountryCode {
	out := make([]CountryCode, 0, len(ts.ByCountry))
	for cc := range ts.ByCountry {
		out = append(out, cc)
	}
	slices.Sort(out)
	return out
}
