package parser

import (
	"strconv"

	"go.yaml.in/yaml/v4"
)

// RefKey is the mapping key holding a reference pointer.
const RefKey = "$ref"

// Pair is one key/value entry of a mapping node, in document order.
type Pair struct {
	Key   string
	Value *yaml.Node
}

// Deref follows alias and document wrapper nodes to the node holding data.
// It does not follow $ref pointers; use Document.Resolve for that.
func Deref(n *yaml.Node) *yaml.Node {
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

// IsPresent reports whether n holds a value. Missing nodes and explicit
// nulls are both absent.
func IsPresent(n *yaml.Node) bool {
	n = Deref(n)
	if n == nil {
		return false
	}
	return !(n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// IsMapping reports whether n is a mapping node.
func IsMapping(n *yaml.Node) bool {
	n = Deref(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n is a sequence node.
func IsSequence(n *yaml.Node) bool {
	n = Deref(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// Lookup returns the value stored under key in mapping n.
// It returns nil when n is not a mapping, the key is missing or the value is null.
func Lookup(n *yaml.Node, key string) *yaml.Node {
	n = Deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if Deref(n.Content[i]).Value == key {
			value := Deref(n.Content[i+1])
			if !IsPresent(value) {
				return nil
			}
			return value
		}
	}
	return nil
}

// Pairs returns the entries of mapping n in document order.
// Entries with null values are skipped.
func Pairs(n *yaml.Node) []Pair {
	n = Deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		value := Deref(n.Content[i+1])
		if !IsPresent(value) {
			continue
		}
		pairs = append(pairs, Pair{Key: Deref(n.Content[i]).Value, Value: value})
	}
	return pairs
}

// Items returns the elements of sequence n.
func Items(n *yaml.Node) []*yaml.Node {
	n = Deref(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]*yaml.Node, len(n.Content))
	for i, item := range n.Content {
		items[i] = Deref(item)
	}
	return items
}

// StringValue returns the value of scalar n, or "" when n is not a present scalar.
func StringValue(n *yaml.Node) string {
	n = Deref(n)
	if !IsPresent(n) || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

// Strings returns the scalar values of sequence n, skipping non-scalar entries.
func Strings(n *yaml.Node) []string {
	items := Items(n)
	values := make([]string, 0, len(items))
	for _, item := range items {
		if item != nil && item.Kind == yaml.ScalarNode && IsPresent(item) {
			values = append(values, item.Value)
		}
	}
	return values
}

// BoolValue reports whether n is a boolean scalar set to true.
func BoolValue(n *yaml.Node) bool {
	n = Deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" {
		return false
	}
	b, err := strconv.ParseBool(n.Value)
	return err == nil && b
}

// Ref returns the $ref pointer of mapping n, if it has one.
func Ref(n *yaml.Node) (string, bool) {
	ref := StringValue(Lookup(n, RefKey))
	return ref, ref != ""
}
