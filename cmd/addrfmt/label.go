package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BorderStyle controls the box drawn around a label.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│
	BorderNone                       // no box, lines indented by one space
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃
	BorderDouble                     // ╔═╗╚╝║
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// ParseBorder parses a --border value.
func ParseBorder(s string) (BorderStyle, error) {
	b, ok := borderNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown border style %q", s)
	}
	return b, nil
}

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
	},
}

// labelStyle configures the label output.
type labelStyle struct {
	Border BorderStyle
	// Width wraps lines wider than Width display columns. Zero disables
	// wrapping.
	Width int
}

// writeLabels draws every record as a boxed mailing label. Widths are
// measured in display columns so accented and East Asian text lines up.
func writeLabels(w io.Writer, style labelStyle, records []record) error {
	for i, r := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeLabel(w, style, r.Lines()); err != nil {
			return err
		}
	}
	return nil
}

func writeLabel(w io.Writer, style labelStyle, lines []string) error {
	var wrapped []string
	for _, line := range lines {
		wrapped = append(wrapped, wrapLine(line, style.Width)...)
	}
	width := 0
	for _, line := range wrapped {
		if lw := runewidth.StringWidth(line); lw > width {
			width = lw
		}
	}

	bc, boxed := borderSets[style.Border]
	var sb strings.Builder
	if boxed {
		sb.WriteString(bc.topLeft + strings.Repeat(bc.horizontal, width+2) + bc.topRight + "\n")
	}
	for _, line := range wrapped {
		if boxed {
			sb.WriteString(bc.vertical + " " + padRight(line, width) + " " + bc.vertical + "\n")
		} else {
			sb.WriteString(" " + strings.TrimRight(line, " ") + "\n")
		}
	}
	if boxed {
		sb.WriteString(bc.bottomLeft + strings.Repeat(bc.horizontal, width+2) + bc.bottomRight + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func wrapLine(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		line := runewidth.Truncate(s, width, "")
		if runewidth.StringWidth(line) == 0 {
			// A single rune wider than width still has to go somewhere.
			line = string([]rune(s)[0])
		}
		lines = append(lines, line)
		s = s[len(line):]
	}
	return lines
}

func padRight(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
