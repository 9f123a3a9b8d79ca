package addrfmt

import (
	"regexp"
	"strings"
)

const maxPostcodeLen = 20

var (
	postcodeRange = regexp.MustCompile(`\d+;\d+`)
	postcodePair  = regexp.MustCompile(`^(\d{5}),\d{5}`)
	numericOnly   = regexp.MustCompile(`^\d+$`)
	countryToken  = regexp.MustCompile(`\$(\w*)`)
)

// sanitize drops values known to be bad data: oversized or ranged postcodes
// and anything carrying a URL.
func sanitize(addr *Address) {
	if pc := addr.Get(Postcode); pc != "" {
		switch {
		case len(pc) > maxPostcodeLen:
			addr.Unset(Postcode)
		case postcodeRange.MatchString(pc):
			addr.Unset(Postcode)
		default:
			if m := postcodePair.FindStringSubmatch(pc); m != nil {
				addr.Set(Postcode, m[1])
			}
		}
	}
	addr.Each(func(c Component, v string) {
		if strings.Contains(v, "http://") || strings.Contains(v, "https://") {
			addr.Unset(c)
		}
	})
}

// fixCountry handles sources that put a numeric code in the country field
// and the real country name in state.
func fixCountry(addr *Address) {
	if numericOnly.MatchString(addr.Get(Country)) && addr.Has(State) {
		addr.Set(Country, addr.Get(State))
		addr.Unset(State)
	}
}

// applyOverlays applies the template's change_country and add_component
// directives.
func applyOverlays(t *Template, addr *Address) {
	if t.ChangeCountry != "" {
		country := countryToken.ReplaceAllStringFunc(t.ChangeCountry, func(tok string) string {
			if c, ok := ParseComponent(tok[1:]); ok {
				return addr.Get(c)
			}
			return ""
		})
		addr.Set(Country, strings.TrimSpace(country))
	}
	if t.AddComponent != nil {
		addr.Set(t.AddComponent.Component, t.AddComponent.Value)
	}
}

// applyReplacements runs the template's replace rules in order. Each rule
// sees the values produced by the rules before it.
func applyReplacements(rules []ReplaceRule, addr *Address) {
	for _, r := range rules {
		if r.Scoped {
			if v := addr.Get(r.Component); v != "" {
				addr.Set(r.Component, r.apply(v))
			}
			continue
		}
		addr.Each(func(c Component, v string) {
			addr.Set(c, r.apply(v))
		})
	}
}

// transform prepares the working copy of an address for rendering.
func transform(t *Template, addr *Address) {
	sanitize(addr)
	fixCountry(addr)
	applyOverlays(t, addr)
	applyReplacements(t.Replace, addr)
}
