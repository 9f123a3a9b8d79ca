package addrfmt

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrInvalidCountryCode = errors.New("invalid country code")
	ErrRender             = errors.New("render failed")
)

// lineJoin replaces line breaks in single-line output.
const lineJoin = ", "

// FormatConfig adjusts a single Format call.
type FormatConfig struct {
	// CountryCode overrides the address's own country_code when non-empty.
	CountryCode string
	// Abbreviate is reserved for component abbreviation ("Street" to "St").
	// It is accepted but has no effect yet.
	Abbreviate bool
	// SingleLine joins the address lines with ", ".
	SingleLine bool
}

// Option configures a Formatter.
type Option func(*options)

type options struct {
	rules      fs.FS
	logger     *slog.Logger
	engine     Engine
	sufficient Sufficient
}

// WithRules loads the rule database from fsys instead of the embedded one.
// fsys must contain components.yaml and countries/worldwide.yaml.
func WithRules(fsys fs.FS) Option {
	return func(o *options) { o.rules = fsys }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEngine sets the template engine. Default: HandlebarsEngine.
func WithEngine(e Engine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

// WithSufficiency sets the check deciding whether an address with a known
// country is complete enough for that country's template. Default:
// HasRoadOrCity.
func WithSufficiency(fn Sufficient) Option {
	return func(o *options) {
		if fn != nil {
			o.sufficient = fn
		}
	}
}

// Formatter turns addresses into printable address blocks. It is safe for
// concurrent use: its registry and alias table never change after New.
type Formatter struct {
	templates  *Templates
	aliases    map[string]Component
	logger     *slog.Logger
	sufficient Sufficient
}

// New loads and compiles the rule database. A returned error means the rule
// database itself is broken.
func New(opts ...Option) (*Formatter, error) {
	o := options{
		logger:     slog.Default(),
		engine:     HandlebarsEngine{},
		sufficient: HasRoadOrCity,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.rules == nil {
		o.rules = DefaultRules()
	}

	rs, err := LoadRules(o.rules)
	if err != nil {
		return nil, err
	}
	aliases, err := buildAliases(rs.Components)
	if err != nil {
		return nil, err
	}
	templates, err := buildTemplates(rs, o.engine)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("address rules loaded",
		slog.Int("countries", len(templates.ByCountry)),
		slog.Int("aliases", len(aliases)),
	)
	return &Formatter{
		templates:  templates,
		aliases:    aliases,
		logger:     o.logger,
		sufficient: o.sufficient,
	}, nil
}

// MustNew is like New but panics on error. Use it where a broken rule
// database should stop the program at startup.
func MustNew(opts ...Option) *Formatter {
	f, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Templates returns the compiled registry. Callers must not modify it.
func (f *Formatter) Templates() *Templates {
	return f.templates
}

// BuildAddress maps raw name/value pairs onto an Address, resolving aliases.
// Values under names that are neither components nor aliases are collected
// into Attention.
func (f *Formatter) BuildAddress(pairs []KeyValue) Address {
	return buildAddress(f.aliases, pairs)
}

// Format formats addr using its own country_code.
func (f *Formatter) Format(addr Address) (string, error) {
	return f.FormatWithConfig(addr, FormatConfig{})
}

// FormatWithConfig formats addr. The result always ends with exactly one
// newline.
func (f *Formatter) FormatWithConfig(addr Address, cfg FormatConfig) (string, error) {
	cc := resolveCountry(f.logger, &addr, cfg.CountryCode)
	tmpl := f.templates.Select(cc, addr, f.sufficient)

	transform(tmpl, &addr)

	rendered, err := tmpl.render.Render(addr.context())
	if err != nil {
		return "", fmt.Errorf("%w: impossible to render template: %w", ErrRender, err)
	}

	out := normalize(rendered, tmpl.PostformatReplace)
	if cfg.SingleLine {
		out = strings.ReplaceAll(strings.TrimSuffix(out, "\n"), "\n", lineJoin) + "\n"
	}
	return out, nil
}
