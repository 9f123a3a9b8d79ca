package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bjaus/addrfmt"
)

const envPrefix = "ADDRFMT"

// newRootCmd builds the addrfmt command. Every call gets its own viper
// instance so commands can be built and run independently in tests.
func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "addrfmt [file...]",
		Short: "Format postal addresses the way each country writes them",
		Long: `addrfmt reads address records and prints each one as a postal address
block laid out for its country.

Records are YAML or JSON mappings of field names to values. Field names may be
canonical components (house_number, road, city, postcode, country_code, ...)
or known aliases (street, town, postal_code, ...). Unrecognized fields are
kept on an attention line. With no files, records are read from stdin.

Examples:
  echo '{"road": "Rue de Rivoli", "house_number": "99", "city": "Paris", "country_code": "fr"}' | addrfmt
  addrfmt -o label --border double addresses.yaml
  addrfmt -c GB -o json addresses.json`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, v, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (yaml, json or toml)")
	pf.String("rules", "", "directory holding components.yaml and countries/worldwide.yaml (default: built-in rules)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")

	f := cmd.Flags()
	f.StringP("country", "c", "", "country code used for every record, overriding country_code")
	f.StringP("output", "o", string(Plain), "output format: "+joinFormats())
	f.Bool("single-line", false, "print each address on one line")
	f.String("border", "rounded", "label border: rounded, ascii, heavy, double, none")
	f.Int("width", 0, "wrap label lines wider than this many columns (0: no wrapping)")

	cmd.AddCommand(newCountriesCmd(v))
	return cmd
}

func newCountriesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the country codes with their own rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := newFormatter(cmd, v)
			if err != nil {
				return err
			}
			for _, cc := range f.Templates().Countries() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), cc); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// loadConfig layers flags over ADDRFMT_* environment variables over the
// optional config file.
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return nil
}

func newFormatter(cmd *cobra.Command, v *viper.Viper) (*addrfmt.Formatter, error) {
	logger := newLogger(cmd.ErrOrStderr(), v.GetString("log-level"))
	opts := []addrfmt.Option{addrfmt.WithLogger(logger)}
	if dir := v.GetString("rules"); dir != "" {
		opts = append(opts, addrfmt.WithRules(os.DirFS(dir)))
	}
	return addrfmt.New(opts...)
}

func runFormat(cmd *cobra.Command, v *viper.Viper, args []string) error {
	format, err := ParseFormat(v.GetString("output"))
	if err != nil {
		return err
	}
	border, err := ParseBorder(v.GetString("border"))
	if err != nil {
		return err
	}
	f, err := newFormatter(cmd, v)
	if err != nil {
		return err
	}

	raw, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg := addrfmt.FormatConfig{
		CountryCode: v.GetString("country"),
		SingleLine:  v.GetBool("single-line"),
	}
	records := make([]record, 0, len(raw))
	for i, pairs := range raw {
		addr := f.BuildAddress(pairs)
		out, err := f.FormatWithConfig(addr, cfg)
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, record{Address: addr, Formatted: out})
	}

	style := labelStyle{Border: border, Width: v.GetInt("width")}
	return writeRecords(cmd.OutOrStdout(), format, style, records)
}

// readInputs reads every named file in order, or stdin when none are given.
func readInputs(stdin io.Reader, paths []string) ([][]addrfmt.KeyValue, error) {
	if len(paths) == 0 {
		return readRecords(stdin)
	}
	var all [][]addrfmt.KeyValue
	for _, p := range paths {
		fh, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		recs, err := readRecords(fh)
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		all = append(all, recs...)
	}
	return all, nil
}

func joinFormats() string {
	names := make([]string, 0, len(formats))
	for _, f := range Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
