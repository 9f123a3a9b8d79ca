package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/addrfmt"
)

func TestReadRecordsJSONKeepsKeyOrder(t *testing.T) {
	t.Parallel()
	recs, err := readRecords(strings.NewReader(`{"zzz": "a", "road": "Rue X", "aaa": "b", "postcode": 31000}`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []addrfmt.KeyValue{
		{Key: "zzz", Value: "a"},
		{Key: "road", Value: "Rue X"},
		{Key: "aaa", Value: "b"},
		{Key: "postcode", Value: "31000"},
	}, recs[0])
}

func TestReadRecordsDocumentsAndLists(t *testing.T) {
	t.Parallel()
	in := "road: A\n---\n- road: B\n- road: C\n---\n[{\"road\": \"D\"}]\n"
	recs, err := readRecords(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 4)
	for i, want := range []string{"A", "B", "C", "D"} {
		assert.Equal(t, []addrfmt.KeyValue{{Key: "road", Value: want}}, recs[i])
	}
}

func TestReadRecordsSkipsNonScalars(t *testing.T) {
	t.Parallel()
	in := "city: &c Paris\ntown: *c\nstate: null\ngeo: {lat: 1, lon: 2}\ntags: [a, b]\n"
	recs, err := readRecords(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []addrfmt.KeyValue{
		{Key: "city", Value: "Paris"},
		{Key: "town", Value: "Paris"},
	}, recs[0])
}

func TestReadRecordsEmpty(t *testing.T) {
	t.Parallel()
	recs, err := readRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReadRecordsErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"scalar document", "just text\n", "expected a mapping or a list of mappings"},
		{"list of scalars", "- a\n- b\n", "item 0 (line 1) is not a mapping"},
		{"malformed", "{road: [\n", "decode records"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := readRecords(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
