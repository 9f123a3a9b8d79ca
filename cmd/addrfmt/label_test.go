package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBorder(t *testing.T) {
	t.Parallel()
	b, err := ParseBorder("double")
	require.NoError(t, err)
	assert.Equal(t, BorderDouble, b)

	_, err = ParseBorder("dotted")
	assert.Error(t, err)
}

func TestWriteLabelASCII(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := writeRecords(&buf, Label, labelStyle{Border: BorderASCII}, testRecords()[:1])
	require.NoError(t, err)
	assert.Equal(t, "+----------------+\n"+
		"| 17 Rue X       |\n"+
		"| 31000 Toulouse |\n"+
		"| France         |\n"+
		"+----------------+\n", buf.String())
}

func TestWriteLabelWideRunes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := record{Formatted: "東京都\nJapan\n"}
	require.NoError(t, writeLabels(&buf, labelStyle{Border: BorderRounded}, []record{r}))
	assert.Equal(t, "╭────────╮\n│ 東京都 │\n│ Japan  │\n╰────────╯\n", buf.String())
}

func TestWriteLabelNoBorder(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, writeLabels(&buf, labelStyle{Border: BorderNone}, testRecords()))
	assert.Equal(t, " 17 Rue X\n 31000 Toulouse\n France\n\n Paris\n France\n", buf.String())
}

func TestWriteLabelBorders(t *testing.T) {
	t.Parallel()
	tests := []struct {
		border BorderStyle
		corner string
		side   string
	}{
		{BorderRounded, "╭", "│"},
		{BorderHeavy, "┏", "┃"},
		{BorderDouble, "╔", "║"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, writeLabels(&buf, labelStyle{Border: tt.border}, testRecords()[1:]))
		assert.Contains(t, buf.String(), tt.corner)
		assert.Contains(t, buf.String(), tt.side+" Paris  "+tt.side)
	}
}

func TestWriteLabelWraps(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := record{Formatted: "31000 Toulouse\n"}
	require.NoError(t, writeLabels(&buf, labelStyle{Border: BorderASCII, Width: 8}, []record{r}))
	assert.Equal(t, "+----------+\n| 31000 To |\n| ulouse   |\n+----------+\n", buf.String())
}

func TestWrapLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"hi"}, wrapLine("hi", 0))
	assert.Equal(t, []string{"hi"}, wrapLine("hi", 5))
	assert.Equal(t, []string{"Hel", "lo"}, wrapLine("Hello", 3))
	// a full-width rune wider than the limit still gets its own line
	assert.Equal(t, []string{"你", "好"}, wrapLine("你好", 1))
}

func TestPadRight(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "東 ", padRight("東", 3))
	assert.Equal(t, "abc", padRight("abc", 2))
}
