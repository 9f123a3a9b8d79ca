package addrfmt

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// attentionSep joins unrecognized values collected into Attention.
const attentionSep = ", "

// buildAddress maps raw pairs onto canonical components. Canonical names are
// assigned first and always win; an alias only fills a component that is
// still empty, first writer wins. Values under unrecognized names are joined
// into Attention in input order.
func buildAddress(aliases map[string]Component, pairs []KeyValue) Address {
	var addr Address
	for _, kv := range pairs {
		if c, ok := ParseComponent(kv.Key); ok {
			if v := cleanValue(kv.Value); v != "" {
				addr.Set(c, v)
			}
		}
	}

	var unknown []string
	for _, kv := range pairs {
		if _, ok := ParseComponent(kv.Key); ok {
			continue
		}
		v := cleanValue(kv.Value)
		if v == "" {
			continue
		}
		if c, ok := aliases[kv.Key]; ok {
			if !addr.Has(c) {
				addr.Set(c, v)
			}
			continue
		}
		unknown = append(unknown, v)
	}

	if len(unknown) > 0 {
		if prev := addr.Get(Attention); prev != "" {
			unknown = append([]string{prev}, unknown...)
		}
		addr.Set(Attention, strings.Join(unknown, attentionSep))
	}
	return addr
}

// cleanValue trims v and puts it in Unicode normal form C so that decomposed
// input renders the same as precomposed input.
func cleanValue(v string) string {
	return norm.NFC.String(strings.TrimSpace(v))
}
