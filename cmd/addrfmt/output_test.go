package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/addrfmt"
)

var errWrite = errors.New("write failed")

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errWrite }

func testRecords() []record {
	return []record{
		{
			Address: addrfmt.NewAddress(map[addrfmt.Component]string{
				addrfmt.HouseNumber: "17",
				addrfmt.Road:        "Rue X",
				addrfmt.City:        "Toulouse",
			}),
			Formatted: "17 Rue X\n31000 Toulouse\nFrance\n",
		},
		{
			Address:   addrfmt.NewAddress(map[addrfmt.Component]string{addrfmt.City: "Paris"}),
			Formatted: "Paris\nFrance\n",
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for _, f := range Formats() {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormats(t *testing.T) {
	t.Parallel()
	fs := Formats()
	assert.Equal(t, []Format{Plain, JSON, JSONL, YAML, Label}, fs)
	fs[0] = "mutated"
	assert.Equal(t, Plain, Formats()[0])
}

func TestRecordLines(t *testing.T) {
	t.Parallel()
	r := testRecords()[1]
	assert.Equal(t, "Paris\nFrance", r.String())
	assert.Equal(t, []string{"Paris", "France"}, r.Lines())
}

func TestWritePlain(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, Plain, labelStyle{}, testRecords()))
	assert.Equal(t, "17 Rue X\n31000 Toulouse\nFrance\n\nParis\nFrance\n", buf.String())
}

func TestWriteJSONSingle(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, JSON, labelStyle{}, testRecords()[:1]))
	assert.JSONEq(t, `{
		"address": {"house_number": "17", "road": "Rue X", "city": "Toulouse"},
		"formatted": "17 Rue X\n31000 Toulouse\nFrance\n"
	}`, buf.String())
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"address\""))
}

func TestWriteJSONMany(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, JSON, labelStyle{}, testRecords()))
	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Paris\nFrance\n", got[1]["formatted"])
}

func TestWriteJSONL(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, JSONL, labelStyle{}, testRecords()))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"address":{"city":"Paris"},"formatted":"Paris\nFrance\n"}`, lines[1])
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, YAML, labelStyle{}, testRecords()))

	var got []struct {
		Address   map[string]string `yaml:"address"`
		Formatted string            `yaml:"formatted"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, map[string]string{"house_number": "17", "road": "Rue X", "city": "Toulouse"}, got[0].Address)
	assert.Equal(t, "17 Rue X\n31000 Toulouse\nFrance\n", got[0].Formatted)
}

func TestWriteRecordsUnsupported(t *testing.T) {
	t.Parallel()
	err := writeRecords(&bytes.Buffer{}, Format("xml"), labelStyle{}, testRecords())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteRecordsWriteError(t *testing.T) {
	t.Parallel()
	for _, f := range Formats() {
		err := writeRecords(errWriter{}, f, labelStyle{}, testRecords())
		if f == YAML {
			// the yaml encoder reports write errors as text
			assert.ErrorContains(t, err, errWrite.Error())
			continue
		}
		assert.ErrorIs(t, err, errWrite, f.String())
	}
}
