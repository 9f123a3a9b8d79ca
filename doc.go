// Package addrfmt formats postal addresses the way each country writes them.
//
// A [Formatter] holds a compiled rule database: one Handlebars template per
// country plus a default and a fallback template, the replace rules that
// clean component values before rendering and the postformat rules that run
// on the rendered text. The database is built once by [New] and is read-only
// afterwards, so a single Formatter can be shared by any number of
// goroutines.
//
//	f, err := addrfmt.New()
//	if err != nil { ... }
//	out, err := f.Format(addrfmt.NewAddress(map[addrfmt.Component]string{
//		addrfmt.HouseNumber:          "17",
//		addrfmt.Road:                 "Rue du Médecin-Colonel Calbairac",
//		addrfmt.Postcode:             "31000",
//		addrfmt.City:                 "Toulouse",
//		addrfmt.Country:              "France",
//		addrfmt.CountryCodeComponent: "FR",
//	}))
//	// 17 Rue du Médecin-Colonel Calbairac
//	// 31000 Toulouse
//	// France
//
// # Components and aliases
//
// An [Address] holds at most one value per [Component]. Data sources rarely
// use the canonical names, so [Formatter.BuildAddress] maps raw key/value
// pairs through the alias table from components.yaml ("street" to road,
// "postal_code" to postcode, ...). Values under names the table does not know
// are kept on the attention line.
//
// # Template selection
//
// The country comes from [FormatConfig.CountryCode] when set, else from the
// address's country_code. An unknown or invalid country uses the default
// template. A known country uses its own template when the address passes the
// [Sufficient] check ([HasRoadOrCity] unless [WithSufficiency] says
// otherwise), and a fallback template when it does not.
//
// # Rule files
//
// The rules shipped with the package are available through [DefaultRules].
// [WithRules] loads a different set from any [io/fs.FS] holding
// components.yaml and countries/worldwide.yaml. Countries may inherit
// another country's rules with use_country and adjust the result with
// change_country and add_component.
//
// # Template engines
//
// Templates are compiled by an [Engine]; [HandlebarsEngine] is the default.
// The "first" block helper is written against [BlockRenderer], so another
// engine only has to provide a way to render a block's inner content.
package addrfmt
