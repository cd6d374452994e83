package differ

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasbreak/internal/equalutil"
	"github.com/erraggy/oasbreak/parser"
	"go.yaml.in/yaml/v4"
)

// parameter is one entry of a parameter list, resolved past any $ref.
type parameter struct {
	ref      string
	node     *yaml.Node
	name     string
	in       string
	required bool
}

// parameters returns the resolved entries of list that are mappings with a
// name. Anything else cannot be paired and is skipped.
func (c *comparison) parameters(s side, list *yaml.Node) []parameter {
	items := parser.Items(list)
	params := make([]parameter, 0, len(items))
	for _, item := range items {
		p := parameter{node: item}
		if ref, ok := parser.Ref(item); ok {
			p.ref = ref
			if p.node, _ = c.follow(s, item); p.node == nil {
				continue
			}
		}
		if !parser.IsMapping(p.node) {
			continue
		}
		p.name = parser.StringValue(parser.Lookup(p.node, "name"))
		if p.name == "" {
			continue
		}
		p.in = parser.StringValue(parser.Lookup(p.node, "in"))
		p.required = parser.BoolValue(parser.Lookup(p.node, "required"))
		params = append(params, p)
	}
	return params
}

// pairParameters matches current entries to previous ones one to one. Each
// pass only considers entries left unmatched by the earlier passes: the same
// $ref pointer, then the same name in the same location, then the same name.
// The result holds the previous index for each current entry, or -1.
func pairParameters(previous, current []parameter) []int {
	matched := make([]int, len(current))
	for i := range matched {
		matched[i] = -1
	}
	used := make([]bool, len(previous))

	passes := []func(p, q parameter) bool{
		func(p, q parameter) bool { return p.ref != "" && p.ref == q.ref },
		func(p, q parameter) bool { return p.name == q.name && p.in == q.in },
		func(p, q parameter) bool { return p.name == q.name },
	}
	for _, same := range passes {
		for i, param := range current {
			if matched[i] >= 0 {
				continue
			}
			for j, old := range previous {
				if !used[j] && same(param, old) {
					matched[i], used[j] = j, true
					break
				}
			}
		}
	}
	return matched
}

// compareParameters compares two parameter lists of a path item or operation.
func (c *comparison) compareParameters(description string, previousList, currentList *yaml.Node) {
	previous := c.parameters(sidePrevious, previousList)
	current := c.parameters(sideCurrent, currentList)
	if len(previous) == 0 && len(current) == 0 {
		return
	}

	var newRequired, breaking, missing []string
	matched := pairParameters(previous, current)
	used := make([]bool, len(previous))
	for i, param := range current {
		var old *parameter
		if j := matched[i]; j >= 0 {
			old, used[j] = &previous[j], true
		}
		switch {
		case param.required && (old == nil || !old.required):
			newRequired = append(newRequired, param.name)
		case old != nil:
			sameSchema := equalutil.Nodes(parser.Lookup(param.node, "schema"), parser.Lookup(old.node, "schema"))
			if param.in != old.in || !sameSchema {
				breaking = append(breaking, param.name)
			}
		}
	}

	for j, param := range previous {
		if !used[j] {
			missing = append(missing, param.name)
		}
	}

	if len(newRequired) > 0 {
		c.record(RuleNewRequiredParameters,
			fmt.Sprintf("%s has %d new required parameters: %s", description, len(newRequired), strings.Join(newRequired, ", ")))
	}
	if len(missing) > 0 {
		c.record(RuleParametersRemoved,
			fmt.Sprintf("%s no longer accepts %d parameters: %s", description, len(missing), strings.Join(missing, ", ")))
	}
	if len(breaking) > 0 {
		c.record(RuleParameterTypeChanged,
			fmt.Sprintf("%s has %d parameters with breaking changes: %s", description, len(breaking), strings.Join(breaking, ", ")))
	}
}
