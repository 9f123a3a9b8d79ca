package addrfmt

import (
	"fmt"
	"log/slog"
	"strings"
)

// CountryCode is an uppercase ISO 3166-1 alpha-2 code. The zero value means
// the country is unknown.
type CountryCode string

// ParseCountryCode validates and normalizes s. The historical alias "UK" is
// mapped to "GB".
func ParseCountryCode(s string) (CountryCode, error) {
	if len(s) != 2 {
		return "", fmt.Errorf("%w: %q must have 2 letters", ErrInvalidCountryCode, s)
	}
	up := strings.ToUpper(s)
	for i := 0; i < len(up); i++ {
		if up[i] < 'A' || up[i] > 'Z' {
			return "", fmt.Errorf("%w: %q must have 2 letters", ErrInvalidCountryCode, s)
		}
	}
	if up == "UK" {
		up = "GB"
	}
	return CountryCode(up), nil
}

// String returns the code.
func (c CountryCode) String() string { return string(c) }

// Known reports whether c holds a code.
func (c CountryCode) Known() bool { return c != "" }

// resolveCountry picks the caller override when given, else the address's own
// country_code. An unparsable code is logged and treated as unknown.
func resolveCountry(logger *slog.Logger, addr *Address, override string) CountryCode {
	raw := override
	if raw == "" {
		raw = addr.Get(CountryCodeComponent)
	}
	if raw == "" {
		return ""
	}
	cc, err := ParseCountryCode(raw)
	if err != nil {
		logger.Info("ignoring invalid country code", slog.String("value", raw), slog.Any("error", err))
		return ""
	}
	return cc
}
