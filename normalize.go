package addrfmt

import (
	"regexp"
	"strings"
)

type substitution struct {
	re   *regexp.Regexp
	repl string
}

// cleanup is applied in order; every step assumes the ones before it ran.
var cleanup = []substitution{
	{regexp.MustCompile(`[},\s]+$`), ""},
	{regexp.MustCompile(`^[,\s]+`), ""},
	{regexp.MustCompile(`^- `), ""},
	{regexp.MustCompile(`,\s*,`), ", "},
	{regexp.MustCompile(`[\t\p{Zs}]+,[\t\p{Zs}]+`), ", "},
	{regexp.MustCompile(`[\t\p{Zs}]{2,}`), " "},
	{regexp.MustCompile(`[\t\p{Zs}]+\n`), "\n"},
	{regexp.MustCompile(`\n,`), "\n"},
	{regexp.MustCompile(`,{2,}`), ","},
	{regexp.MustCompile(`,\n`), "\n"},
	{regexp.MustCompile(`\n[\t\p{Zs}]+`), "\n"},
	{regexp.MustCompile(`\n{2,}`), "\n"},
}

// normalize cleans a rendered address: punctuation and whitespace runs are
// collapsed, adjacent duplicate tokens and lines are removed, the
// postformat rules run and exactly one trailing newline is appended.
//
// The cleanup pass repeats until it no longer changes the text, since
// dropping a token or a line can expose a new leading "- " or comma.
func normalize(s string, postformat []ReplaceRule) string {
	for {
		next := cleanPass(s)
		if next == s {
			break
		}
		s = next
	}

	for _, r := range postformat {
		s = r.apply(s)
	}
	return s + "\n"
}

// cleanPass runs the cleanup substitutions and the token and line dedup once.
func cleanPass(s string) string {
	for _, sub := range cleanup {
		s = sub.re.ReplaceAllLiteralString(s, sub.repl)
	}

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = dedupTokens(line)
		if line == "" {
			continue
		}
		if n := len(lines); n > 0 && lines[n-1] == line {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// dedupTokens drops comma-separated tokens equal to the token before them.
func dedupTokens(line string) string {
	var out []string
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1] == tok {
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, ", ")
}
