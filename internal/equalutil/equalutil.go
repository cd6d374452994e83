// Package equalutil provides structural equality for decoded document nodes.
package equalutil

import (
	"strconv"

	"go.yaml.in/yaml/v4"
)

// Nodes reports whether a and b hold the same data.
//
// Mapping key order is ignored, sequence order is significant, aliases are
// followed, and integer and float scalars compare by numeric value. A missing
// node and an explicit null are equal to each other.
func Nodes(a, b *yaml.Node) bool {
	a, b = unwrap(a), unwrap(b)
	if isNull(a) || isNull(b) {
		return isNull(a) && isNull(b)
	}
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case yaml.MappingNode:
		return mappingsEqual(a, b)
	case yaml.SequenceNode:
		if len(a.Content) != len(b.Content) {
			return false
		}
		for i := range a.Content {
			if !Nodes(a.Content[i], b.Content[i]) {
				return false
			}
		}
		return true
	default:
		return scalarsEqual(a, b)
	}
}

func mappingsEqual(a, b *yaml.Node) bool {
	av, bv := mappingValues(a), mappingValues(b)
	if len(av) != len(bv) {
		return false
	}
	for key, value := range av {
		other, ok := bv[key]
		if !ok || !Nodes(value, other) {
			return false
		}
	}
	return true
}

// mappingValues indexes a mapping by key; later duplicates win, as they do when decoding into a map.
func mappingValues(n *yaml.Node) map[string]*yaml.Node {
	values := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		values[unwrap(n.Content[i]).Value] = n.Content[i+1]
	}
	return values
}

func scalarsEqual(a, b *yaml.Node) bool {
	at, bt := a.ShortTag(), b.ShortTag()
	if isNumeric(at) && isNumeric(bt) {
		af, aerr := strconv.ParseFloat(a.Value, 64)
		bf, berr := strconv.ParseFloat(b.Value, 64)
		if aerr == nil && berr == nil {
			return af == bf
		}
	}
	if at == "!!bool" && bt == "!!bool" {
		ab, aerr := strconv.ParseBool(a.Value)
		bb, berr := strconv.ParseBool(b.Value)
		if aerr == nil && berr == nil {
			return ab == bb
		}
	}
	return at == bt && a.Value == b.Value
}

func isNumeric(tag string) bool {
	return tag == "!!int" || tag == "!!float"
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func unwrap(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.AliasNode:
			n = n.Alias
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		default:
			return n
		}
	}
	return nil
}
