package differ

import (
	"fmt"

	"github.com/erraggy/oasbreak/internal/severity"
)

// Finding is a single detected breaking change.
type Finding struct {
	// Kind is the catalog rule that produced the finding
	Kind RuleName `json:"kind" yaml:"kind"`
	// Message is the rendered human-readable description
	Message string `json:"message" yaml:"message"`
	// Severity is the rule's default severity
	Severity severity.Severity `json:"severity" yaml:"severity"`
}

// String returns "<symbol> <kind>: <message>".
func (f Finding) String() string {
	return fmt.Sprintf("%s %s: %s", f.Severity.Symbol(), f.Kind, f.Message)
}

// Findings is an append-only ordered collection of findings.
// The zero value is ready to use.
type Findings struct {
	items []Finding
}

// Add appends f.
func (s *Findings) Add(f Finding) {
	s.items = append(s.items, f)
}

// All returns every finding in the order it was added.
func (s *Findings) All() []Finding {
	out := make([]Finding, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of findings.
func (s *Findings) Len() int {
	return len(s.items)
}
