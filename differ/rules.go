package differ

import (
	"strings"

	"github.com/erraggy/oasbreak/internal/severity"
	"github.com/erraggy/oasbreak/parser"
)

// RuleName identifies a kind of breaking change. It is used verbatim as Finding.Kind.
type RuleName string

// Catalog rule names
const (
	RuleRemovedPaths                RuleName = "removed-paths"
	RuleRemovedHTTPMethods          RuleName = "removed-http-methods"
	RuleRequiredRequestBody         RuleName = "required-request-body"
	RuleNewSchemaDefinition         RuleName = "new-schema-definition"
	RuleSchemaTypeChanged           RuleName = "schema-type-changed"
	RuleSchemaNewRequiredProperties RuleName = "schema-new-required-properties"
	RuleSchemaPropertyTypeChanged   RuleName = "schema-property-type-changed"
	RuleSchemaPropertiesRemoved     RuleName = "schema-properties-removed"
	RuleMultipleOfTypeChanged       RuleName = "multiple-of-type-changed"
	RuleFewerMultipleOfOptions      RuleName = "fewer-multiple-of-options"
	RuleResponseRemoved             RuleName = "response-removed"
	RuleNewRequiredParameters       RuleName = "new-required-parameters"
	RuleParametersRemoved           RuleName = "parameters-removed"
	RuleParameterTypeChanged        RuleName = "parameter-type-changed"
)

// kindSchemaRemovedProperties is emitted when some, but not all, properties of
// an object schema disappear. No catalog rule carries this name, so Record
// always drops it.
const kindSchemaRemovedProperties RuleName = "schema-removed-properties"

// ValueSlot is the placeholder in a message template replaced by the detail value.
const ValueSlot = "%VALUE%"

// RuleDefinition describes one kind of breaking change.
type RuleDefinition struct {
	// Name is the rule identifier
	Name RuleName `json:"name" yaml:"name"`
	// Description explains what the rule detects
	Description string `json:"description" yaml:"description"`
	// Message is an optional template containing ValueSlot once.
	// When empty the detail value is used verbatim.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	// Severity is the default severity attached to findings of this kind
	Severity severity.Severity `json:"severity" yaml:"severity"`
}

// Apply renders the message for value.
func (r RuleDefinition) Apply(value string) string {
	if r.Message == "" {
		return value
	}
	return strings.Replace(r.Message, ValueSlot, value, 1)
}

var definitions = []RuleDefinition{
	{
		Name:        RuleRemovedPaths,
		Description: "An entire endpoint and all associated http methods was removed.",
		Message:     "%VALUE% was removed",
		Severity:    severity.SeverityCritical,
	},
	{
		Name:        RuleRemovedHTTPMethods,
		Description: "An individual http method was removed from a path.",
		Message:     "%VALUE% was removed",
		Severity:    severity.SeverityCritical,
	},
	{
		Name:        RuleRequiredRequestBody,
		Description: "A request now requires a body to be provided.",
		Message:     "%VALUE% now requires a request body",
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleNewSchemaDefinition,
		Description: "A new schema was created for an existing property or object.",
		Message:     "%VALUE% has a new definition that did not exist before",
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleSchemaTypeChanged,
		Description: `A data type was changed for a top-level schema. Example: "object" to "array".`,
		Message:     "%VALUE% data type changed in the schema",
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleSchemaNewRequiredProperties,
		Description: "An existing schema has new required properties.",
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleSchemaPropertyTypeChanged,
		Description: `The data type of a property in a schema changed. Example: "string" to "number".`,
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleSchemaPropertiesRemoved,
		Description: "All properties have been removed from a schema.",
		Message:     "%VALUE% no longer has properties defined",
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleMultipleOfTypeChanged,
		Description: `A schema defined with a multiple-of property (allOf, anyOf, oneOf) changed. Example: "allOf" to "anyOf".`,
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleFewerMultipleOfOptions,
		Description: "A schema defined with a multiple-of property (allOf, anyOf, oneOf) has fewer options than before.",
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleResponseRemoved,
		Description: "A path no longer returns a response code it did previously.",
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleNewRequiredParameters,
		Description: "A path requires additional parameters to be provided.",
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleParametersRemoved,
		Description: "A path no longer supports one or more parameters",
		Severity:    severity.SeverityError,
	},
	{
		Name:        RuleParameterTypeChanged,
		Description: `The data type of one or more parameters changed. Example: "string" to "number".`,
		Severity:    severity.SeverityError,
	},
}

// Definitions returns every known rule in catalog order.
func Definitions() []RuleDefinition {
	out := make([]RuleDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// LookupDefinition returns the definition named name.
func LookupDefinition(name string) (RuleDefinition, bool) {
	for _, def := range definitions {
		if string(def.Name) == name {
			return def, true
		}
	}
	return RuleDefinition{}, false
}

// Catalog is the set of rules active for one detection run.
type Catalog struct {
	rules []RuleDefinition
}

// NewCatalog builds the active catalog.
//
// With no names every definition is active. Otherwise the catalog holds, in
// the order given, each named definition; unknown names are logged at Warn
// and skipped. A nil logger discards warnings.
func NewCatalog(names []string, logger parser.Logger) *Catalog {
	logger = parser.OrNop(logger)
	if len(names) == 0 {
		return &Catalog{rules: Definitions()}
	}

	c := &Catalog{rules: make([]RuleDefinition, 0, len(names))}
	for _, name := range names {
		def, ok := LookupDefinition(name)
		if !ok {
			logger.Warn("unsupported breaking change type ignored", "rule", name)
			continue
		}
		c.rules = append(c.rules, def)
	}
	return c
}

// Rules returns the active definitions in catalog order.
func (c *Catalog) Rules() []RuleDefinition {
	out := make([]RuleDefinition, len(c.rules))
	copy(out, c.rules)
	return out
}

// Names returns the active rule names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.rules))
	for i, def := range c.rules {
		names[i] = string(def.Name)
	}
	return names
}

// Enabled reports whether name is active.
func (c *Catalog) Enabled(name RuleName) bool {
	_, ok := c.definition(name)
	return ok
}

func (c *Catalog) definition(name RuleName) (RuleDefinition, bool) {
	for _, def := range c.rules {
		if def.Name == name {
			return def, true
		}
	}
	return RuleDefinition{}, false
}

// Record builds a finding of kind name from value and appends it to sink.
// Kinds not in the catalog are dropped without notice and report false.
func (c *Catalog) Record(sink *Findings, name RuleName, value string) (Finding, bool) {
	def, ok := c.definition(name)
	if !ok {
		return Finding{}, false
	}
	f := Finding{Kind: name, Message: def.Apply(value), Severity: def.Severity}
	sink.Add(f)
	return f, true
}
