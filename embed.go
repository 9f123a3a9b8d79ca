package addrfmt

import (
	"embed"
	"io/fs"
)

//go:embed conf/components.yaml conf/countries/worldwide.yaml
var embeddedRules embed.FS

// DefaultRules exposes the rule database shipped with the package so callers
// can extend it or load it with WithRules alongside their own files.
func DefaultRules() fs.FS {
	sub, err := fs.Sub(embeddedRules, "conf")
	if err != nil {
		return embeddedRules
	}
	return sub
}
