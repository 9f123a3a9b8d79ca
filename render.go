package addrfmt

import (
	"strings"

	"github.com/aymerick/raymond"
)

// alternativeSep separates the alternatives of a "first" block.
const alternativeSep = " || "

// Engine compiles address templates. Compilation happens once, when the
// registry is built.
type Engine interface {
	Compile(source string) (Renderer, error)
}

// Renderer substitutes component values into a compiled template. Values are
// keyed by component name; absent components are missing from the map.
type Renderer interface {
	Render(values map[string]string) (string, error)
}

// BlockRenderer is the one capability the "first" helper needs from an
// engine: rendering the block's inner content against the current values.
type BlockRenderer interface {
	RenderBlock() string
}

// FirstAlternative renders the block, splits it on " || " and returns the
// first alternative that is not blank.
func FirstAlternative(b BlockRenderer) string {
	for _, alt := range strings.Split(b.RenderBlock(), alternativeSep) {
		if v := strings.TrimSpace(alt); v != "" {
			return v
		}
	}
	return ""
}

// HandlebarsEngine compiles templates with raymond and registers the "first"
// block helper on each of them. Values are never HTML-escaped.
type HandlebarsEngine struct{}

// Compile parses source.
func (HandlebarsEngine) Compile(source string) (Renderer, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, err
	}
	tpl.RegisterHelper("first", func(options *raymond.Options) raymond.SafeString {
		return raymond.SafeString(FirstAlternative(raymondBlock{options}))
	})
	return &handlebarsRenderer{tpl: tpl}, nil
}

type handlebarsRenderer struct {
	tpl *raymond.Template
}

func (r *handlebarsRenderer) Render(values map[string]string) (string, error) {
	ctx := make(map[string]any, len(values))
	for k, v := range values {
		ctx[k] = raymond.SafeString(v)
	}
	return r.tpl.Exec(ctx)
}

type raymondBlock struct {
	options *raymond.Options
}

func (b raymondBlock) RenderBlock() string {
	return b.options.Fn()
}
