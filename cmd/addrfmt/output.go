package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/addrfmt"
)

// ErrUnsupportedFormat is returned for an unknown --output value.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format is an output format for formatted records.
type Format string

const (
	Plain Format = "plain"
	JSON  Format = "json"
	JSONL Format = "jsonl"
	YAML  Format = "yaml"
	Label Format = "label"
)

var formats = []Format{Plain, JSON, JSONL, YAML, Label}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses an --output value.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// record is one input address together with its formatted block.
type record struct {
	Address   addrfmt.Address `json:"address" yaml:"address"`
	Formatted string          `json:"formatted" yaml:"formatted"`
}

// String returns the block without its trailing newline.
func (r record) String() string { return strings.TrimSuffix(r.Formatted, "\n") }

// Lines returns the block split into lines.
func (r record) Lines() []string { return strings.Split(r.String(), "\n") }

// writeRecords writes records to w in format f.
func writeRecords(w io.Writer, f Format, style labelStyle, records []record) error {
	switch f {
	case Plain:
		return writePlain(w, records)
	case JSON:
		return writeJSON(w, records)
	case JSONL:
		return writeJSONL(w, records)
	case YAML:
		return writeYAML(w, records)
	case Label:
		return writeLabels(w, style, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// writePlain writes each block followed by a blank line between records.
func writePlain(w io.Writer, records []record) error {
	for i, r := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, r.Formatted); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, records []record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if len(records) == 1 {
		return enc.Encode(records[0])
	}
	return enc.Encode(records)
}

func writeJSONL(w io.Writer, records []record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, records []record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	var err error
	if len(records) == 1 {
		err = enc.Encode(records[0])
	} else {
		err = enc.Encode(records)
	}
	if err != nil {
		return err
	}
	return enc.Close()
}
