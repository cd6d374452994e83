package differ

import (
	"github.com/erraggy/oasbreak/parser"
	"go.yaml.in/yaml/v4"
)

// shapeKind discriminates the structural form of a dereferenced schema node.
type shapeKind int

const (
	shapeOpaque shapeKind = iota
	shapeObject
	shapeComposed
	shapeArray
	shapePrimitive
)

func (k shapeKind) String() string {
	switch k {
	case shapeObject:
		return "object"
	case shapeComposed:
		return "composed"
	case shapeArray:
		return "array"
	case shapePrimitive:
		return "primitive"
	default:
		return "opaque"
	}
}

// Composition keywords, in the order they are checked.
const (
	tagOneOf = "oneOf"
	tagAllOf = "allOf"
	tagAnyOf = "anyOf"
)

var compositionTags = []string{tagOneOf, tagAllOf, tagAnyOf}

var primitiveTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"integer": true,
	"boolean": true,
}

// schemaShape is a schema node classified once, with the fields its kind uses.
type schemaShape struct {
	kind shapeKind
	node *yaml.Node

	// shapeObject
	properties  *yaml.Node
	required    []string
	hasRequired bool

	// shapeComposed
	tag     string
	members []*yaml.Node

	// shapeArray
	items *yaml.Node

	// shapePrimitive
	primitive string
}

// classify inspects a node that has already been resolved past any $ref.
// "type: object" wins over composition keywords, which win over arrays.
func classify(n *yaml.Node) schemaShape {
	s := schemaShape{node: n}
	typ := schemaType(n)

	if typ == "object" {
		s.kind = shapeObject
		s.properties = parser.Lookup(n, "properties")
		required := parser.Lookup(n, "required")
		s.hasRequired = required != nil
		s.required = parser.Strings(required)
		return s
	}
	for _, tag := range compositionTags {
		if members := parser.Lookup(n, tag); members != nil {
			s.kind = shapeComposed
			s.tag = tag
			s.members = parser.Items(members)
			return s
		}
	}
	switch {
	case typ == "array":
		s.kind = shapeArray
		s.items = parser.Lookup(n, "items")
	case primitiveTypes[typ]:
		s.kind = shapePrimitive
		s.primitive = typ
	default:
		s.kind = shapeOpaque
	}
	return s
}

// schemaType returns the scalar "type" keyword, or "" when it is absent or a list.
func schemaType(n *yaml.Node) string {
	return parser.StringValue(parser.Lookup(n, "type"))
}

func isPrimitiveType(n *yaml.Node) bool {
	return primitiveTypes[schemaType(n)]
}
