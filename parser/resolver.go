package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oasbreak/internal/pathutil"
	"github.com/erraggy/oasbreak/oaserrors"
	"go.yaml.in/yaml/v4"
)

// MaxRefDepth is the maximum number of $ref hops followed from a single node.
const MaxRefDepth = 100

// Resolve returns the node that the local reference ref points to.
// External references are reported as *oaserrors.ReferenceError with IsExternal set.
func (d *Document) Resolve(ref string) (*yaml.Node, error) {
	if d == nil || d.Root == nil {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "document is empty"}
	}
	if !pathutil.IsLocalRef(ref) {
		return nil, &oaserrors.ReferenceError{Ref: ref, IsExternal: true, Message: "only local references are supported"}
	}
	parts, err := pathutil.SplitPointer(ref)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "malformed pointer", Cause: err}
	}

	current := d.Root
	for i, part := range parts {
		current = Deref(current)
		switch {
		case current == nil:
			return nil, refNotFound(ref, parts[:i])
		case current.Kind == yaml.MappingNode:
			next := Lookup(current, part)
			if next == nil {
				return nil, &oaserrors.ReferenceError{
					Ref:     ref,
					Message: fmt.Sprintf("missing key %q at #/%s", part, strings.Join(parts[:i], "/")),
				}
			}
			current = next
		case current.Kind == yaml.SequenceNode:
			// RFC 6901 array index
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(current.Content) {
				return nil, &oaserrors.ReferenceError{
					Ref:     ref,
					Message: fmt.Sprintf("invalid array index %q at #/%s", part, strings.Join(parts[:i], "/")),
				}
			}
			current = current.Content[index]
		default:
			return nil, refNotFound(ref, parts[:i])
		}
	}
	return Deref(current), nil
}

func refNotFound(ref string, prefix []string) error {
	return &oaserrors.ReferenceError{
		Ref:     ref,
		Message: fmt.Sprintf("cannot traverse into scalar at #/%s", strings.Join(prefix, "/")),
	}
}

// Follow resolves n through its chain of $ref pointers and returns the
// first node that is not itself a reference, along with every pointer
// visited on the way. A node without $ref is returned unchanged.
func (d *Document) Follow(n *yaml.Node) (*yaml.Node, []string, error) {
	n = Deref(n)
	var chain []string
	seen := make(map[string]bool)
	for {
		ref, ok := Ref(n)
		if !ok {
			return n, chain, nil
		}
		if seen[ref] {
			return nil, chain, &oaserrors.ReferenceError{Ref: ref, Message: "circular reference chain"}
		}
		if len(chain) >= MaxRefDepth {
			return nil, chain, &oaserrors.ReferenceError{Ref: ref, Message: fmt.Sprintf("exceeds maximum depth of %d", MaxRefDepth)}
		}
		seen[ref] = true
		chain = append(chain, ref)

		target, err := d.Resolve(ref)
		if err != nil {
			return nil, chain, err
		}
		n = target
	}
}
