package differ

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasbreak/internal/equalutil"
	"github.com/erraggy/oasbreak/parser"
	"go.yaml.in/yaml/v4"
)

// compareSchemas compares a previous schema node against its current
// counterpart and records findings under description. Either node may be a
// $ref; both are resolved in their own document.
func (c *comparison) compareSchemas(description string, previous, current *yaml.Node) {
	if !parser.IsPresent(previous) {
		if parser.IsPresent(current) {
			c.record(RuleNewSchemaDefinition, description)
		}
		return
	}
	if !parser.IsPresent(current) {
		return
	}

	previous, prevChain := c.follow(sidePrevious, previous)
	current, curChain := c.follow(sideCurrent, current)
	if previous == nil || current == nil {
		return
	}
	if c.isOpen(sidePrevious, prevChain) || c.isOpen(sideCurrent, curChain) {
		return
	}
	c.enter(sidePrevious, prevChain)
	c.enter(sideCurrent, curChain)
	defer c.leave(sidePrevious, prevChain)
	defer c.leave(sideCurrent, curChain)

	shape := classify(previous)
	switch shape.kind {
	case shapeObject:
		c.compareObjects(description, shape, current)
	case shapeComposed:
		c.compareComposed(description, shape, current)
	case shapeArray:
		if schemaType(current) != "array" {
			c.record(RuleSchemaTypeChanged, description)
			return
		}
		c.compareSchemas(description+" - array", shape.items, parser.Lookup(current, "items"))
	default:
		if !equalutil.Nodes(previous, current) {
			c.record(RuleSchemaPropertyTypeChanged, description)
		}
	}
}

func (c *comparison) compareObjects(description string, previous schemaShape, current *yaml.Node) {
	if schemaType(current) != "object" {
		c.record(RuleSchemaTypeChanged, description)
		return
	}

	if added := newRequired(previous, parser.Strings(parser.Lookup(current, "required"))); len(added) > 0 {
		c.record(RuleSchemaNewRequiredProperties,
			fmt.Sprintf("%s has %d new required fields: %s", description, len(added), strings.Join(added, ", ")))
	}

	if previous.properties == nil {
		return
	}
	currentProps := parser.Lookup(current, "properties")
	if currentProps == nil {
		c.record(RuleSchemaPropertiesRemoved, description)
		return
	}

	allPresent := true
	var mutated []string
	for _, prop := range parser.Pairs(previous.properties) {
		currentProp := parser.Lookup(currentProps, prop.Key)
		if currentProp == nil {
			allPresent = false
			break
		}
		if _, isRef := parser.Ref(prop.Value); !isRef && isPrimitiveType(prop.Value) {
			resolved, _ := c.follow(sideCurrent, currentProp)
			if schemaType(prop.Value) != schemaType(resolved) {
				mutated = append(mutated, prop.Key)
			}
			continue
		}
		c.compareSchemas(description, prop.Value, currentProp)
	}

	if !allPresent {
		c.record(kindSchemaRemovedProperties, description)
	}
	if len(mutated) > 0 {
		c.record(RuleSchemaPropertyTypeChanged,
			fmt.Sprintf("%s has %d properties that have changed data type: %s", description, len(mutated), strings.Join(mutated, ", ")))
	}
}

// newRequired returns the names in current that the previous object did not
// require. Names compare case-insensitively, and every name is new when the
// previous object had no required list at all.
func newRequired(previous schemaShape, current []string) []string {
	if !previous.hasRequired {
		return current
	}
	var added []string
	for _, name := range current {
		found := false
		for _, old := range previous.required {
			if strings.EqualFold(old, name) {
				found = true
				break
			}
		}
		if !found {
			added = append(added, name)
		}
	}
	return added
}

// compareComposed pairs members by position. It does not attempt to match
// union variants semantically.
func (c *comparison) compareComposed(description string, previous schemaShape, current *yaml.Node) {
	currentMembers := parser.Lookup(current, previous.tag)
	if currentMembers == nil {
		c.record(RuleMultipleOfTypeChanged,
			fmt.Sprintf(`%s schema does not have the same "multiple of" type (was "%s")`, description, previous.tag))
		return
	}
	members := parser.Items(currentMembers)
	if len(previous.members) > len(members) {
		c.record(RuleFewerMultipleOfOptions,
			fmt.Sprintf("%s schema has more '%s' options", description, previous.tag))
		return
	}
	for i, member := range previous.members {
		c.compareSchemas(description, member, members[i])
	}
}
