package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/addrfmt"
)

// readRecords decodes a YAML or JSON stream into raw address records. Every
// document holds either one mapping or a sequence of mappings. Key order is
// kept, since it decides how unrecognized fields are joined.
func readRecords(r io.Reader) ([][]addrfmt.KeyValue, error) {
	var out [][]addrfmt.KeyValue
	dec := yaml.NewDecoder(r)
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		if len(doc.Content) == 0 {
			continue
		}
		root := doc.Content[0]
		switch root.Kind {
		case yaml.MappingNode:
			out = append(out, mappingPairs(root))
		case yaml.SequenceNode:
			for i, item := range root.Content {
				if item.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("decode records: item %d (line %d) is not a mapping", i, item.Line)
				}
				out = append(out, mappingPairs(item))
			}
		default:
			return nil, fmt.Errorf("decode records: line %d: expected a mapping or a list of mappings", root.Line)
		}
	}
}

// mappingPairs keeps scalar fields only; nested values have no component to
// land in.
func mappingPairs(n *yaml.Node) []addrfmt.KeyValue {
	var pairs []addrfmt.KeyValue
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
			continue
		}
		pairs = append(pairs, addrfmt.KeyValue{Key: k.Value, Value: v.Value})
	}
	return pairs
}
