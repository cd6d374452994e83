package differ

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oasbreak/parser"
	"go.yaml.in/yaml/v4"
)

// side selects which revision a node belongs to.
type side int

const (
	sidePrevious side = iota
	sideCurrent
)

func (s side) String() string {
	if s == sidePrevious {
		return "previous"
	}
	return "current"
}

// openRef is a reference currently being compared on one side.
type openRef struct {
	side    side
	pointer string
}

// comparison carries the state of one detection run. It is never shared
// between runs.
type comparison struct {
	previous *parser.Document
	current  *parser.Document
	catalog  *Catalog
	sink     *Findings
	logger   parser.Logger
	upper    cases.Caser

	// open holds the references entered by compareSchemas and not yet left
	open map[openRef]int
}

func newComparison(previous, current *parser.Document, catalog *Catalog, logger parser.Logger) *comparison {
	return &comparison{
		previous: previous,
		current:  current,
		catalog:  catalog,
		sink:     &Findings{},
		logger:   parser.OrNop(logger),
		upper:    cases.Upper(language.Und),
		open:     make(map[openRef]int),
	}
}

func (c *comparison) record(name RuleName, value string) {
	c.catalog.Record(c.sink, name, value)
}

func (c *comparison) doc(s side) *parser.Document {
	if s == sidePrevious {
		return c.previous
	}
	return c.current
}

// follow resolves n through its $ref chain in the document of side s.
// Unresolvable references are logged and reported as absent.
func (c *comparison) follow(s side, n *yaml.Node) (*yaml.Node, []string) {
	target, chain, err := c.doc(s).Follow(n)
	if err != nil {
		c.logger.Warn("unresolvable reference treated as absent", "side", s.String(), "error", err)
		return nil, nil
	}
	return target, chain
}

// isOpen reports whether any pointer of chain is already being compared on side s.
func (c *comparison) isOpen(s side, chain []string) bool {
	for _, pointer := range chain {
		if c.open[openRef{side: s, pointer: pointer}] > 0 {
			return true
		}
	}
	return false
}

func (c *comparison) enter(s side, chain []string) {
	for _, pointer := range chain {
		c.open[openRef{side: s, pointer: pointer}]++
	}
}

func (c *comparison) leave(s side, chain []string) {
	for _, pointer := range chain {
		key := openRef{side: s, pointer: pointer}
		if c.open[key]--; c.open[key] <= 0 {
			delete(c.open, key)
		}
	}
}

// operationLabel renders "GET /pets".
func (c *comparison) operationLabel(method, path string) string {
	return c.upper.String(method) + " " + path
}
