package differ

import (
	"testing"

	"github.com/erraggy/oasbreak/internal/severity"
	"github.com/erraggy/oasbreak/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allRuleNames = []string{
	"removed-paths",
	"removed-http-methods",
	"required-request-body",
	"new-schema-definition",
	"schema-type-changed",
	"schema-new-required-properties",
	"schema-property-type-changed",
	"schema-properties-removed",
	"multiple-of-type-changed",
	"fewer-multiple-of-options",
	"response-removed",
	"new-required-parameters",
	"parameters-removed",
	"parameter-type-changed",
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 14)
	for i, def := range defs {
		assert.Equal(t, allRuleNames[i], string(def.Name))
		assert.NotEmpty(t, def.Description, "rule %s should be described", def.Name)
	}

	defs[0].Name = "mutated"
	assert.Equal(t, RuleRemovedPaths, Definitions()[0].Name, "Definitions should return a copy")
}

func TestDefinitionSeverities(t *testing.T) {
	for _, def := range Definitions() {
		want := severity.SeverityError
		if def.Name == RuleRemovedPaths || def.Name == RuleRemovedHTTPMethods {
			want = severity.SeverityCritical
		}
		assert.Equal(t, want, def.Severity, "rule %s", def.Name)
	}
}

func TestNewCatalog(t *testing.T) {
	t.Run("empty selects every rule", func(t *testing.T) {
		assert.Equal(t, allRuleNames, NewCatalog(nil, nil).Names())
		assert.Equal(t, allRuleNames, NewCatalog([]string{}, nil).Names())
	})

	t.Run("subset keeps requested order", func(t *testing.T) {
		c := NewCatalog([]string{"response-removed", "removed-paths"}, nil)
		assert.Equal(t, []string{"response-removed", "removed-paths"}, c.Names())
		assert.True(t, c.Enabled(RuleRemovedPaths))
		assert.False(t, c.Enabled(RuleSchemaTypeChanged))
	})

	t.Run("unknown names warn and are skipped", func(t *testing.T) {
		log := testutil.NewRecordingLogger()
		c := NewCatalog([]string{"not-a-rule", "removed-paths", "Removed-Paths"}, log)
		assert.Equal(t, []string{"removed-paths"}, c.Names())

		warns := log.Warnings()
		require.Len(t, warns, 2)
		assert.Equal(t, "not-a-rule", warns[0].Attr("rule"))
		assert.Equal(t, "Removed-Paths", warns[1].Attr("rule"), "names match exactly")
	})

	t.Run("only unknown names leave an empty catalog", func(t *testing.T) {
		c := NewCatalog([]string{"nope"}, nil)
		assert.Empty(t, c.Names())
		assert.Empty(t, c.Rules())
	})
}

func TestCatalogRecord(t *testing.T) {
	c := NewCatalog(nil, nil)

	t.Run("template slot is replaced", func(t *testing.T) {
		var sink Findings
		f, ok := c.Record(&sink, RuleRemovedPaths, "/pets")
		require.True(t, ok)
		assert.Equal(t, "/pets was removed", f.Message)
		assert.Equal(t, severity.SeverityCritical, f.Severity)
		assert.Equal(t, []Finding{f}, sink.All())
	})

	t.Run("no template uses the value verbatim", func(t *testing.T) {
		var sink Findings
		f, ok := c.Record(&sink, RuleResponseRemoved, "GET /pets is no longer allowed to return a '404' response")
		require.True(t, ok)
		assert.Equal(t, "GET /pets is no longer allowed to return a '404' response", f.Message)
	})

	t.Run("kinds outside the catalog are dropped", func(t *testing.T) {
		var sink Findings
		_, ok := c.Record(&sink, kindSchemaRemovedProperties, "POST /pets")
		assert.False(t, ok)
		assert.Equal(t, 0, sink.Len())

		subset := NewCatalog([]string{"removed-paths"}, nil)
		_, ok = subset.Record(&sink, RuleSchemaTypeChanged, "POST /pets")
		assert.False(t, ok)
		assert.Empty(t, sink.All())
	})
}

func TestRuleDefinitionApply(t *testing.T) {
	def := RuleDefinition{Message: "%VALUE% and %VALUE%"}
	assert.Equal(t, "x and %VALUE%", def.Apply("x"), "only the first slot is replaced")
	assert.Equal(t, "raw", RuleDefinition{}.Apply("raw"))
}

func TestLookupDefinition(t *testing.T) {
	def, ok := LookupDefinition("schema-type-changed")
	require.True(t, ok)
	assert.Equal(t, "%VALUE% data type changed in the schema", def.Message)

	_, ok = LookupDefinition("schema-removed-properties")
	assert.False(t, ok)
}

func TestFindingString(t *testing.T) {
	f := Finding{Kind: RuleRemovedPaths, Message: "/pets was removed", Severity: severity.SeverityCritical}
	assert.Equal(t, "✗ removed-paths: /pets was removed", f.String())
}

func TestFindingsAllReturnsCopy(t *testing.T) {
	var sink Findings
	sink.Add(Finding{Kind: RuleRemovedPaths, Message: "a"})
	all := sink.All()
	all[0].Message = "changed"
	assert.Equal(t, "a", sink.All()[0].Message)
}
