package parser

import (
	"errors"
	"testing"

	"github.com/erraggy/oasbreak/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resolverDoc = `openapi: 3.0.0
paths:
  /pets:
    get:
      parameters:
        - name: limit
          in: query
        - name: offset
          in: query
components:
  schemas:
    Pet:
      type: object
    Alias:
      $ref: '#/components/schemas/Middle'
    Middle:
      $ref: '#/components/schemas/Pet'
    LoopA:
      $ref: '#/components/schemas/LoopB'
    LoopB:
      $ref: '#/components/schemas/LoopA'
    Dangling:
      $ref: '#/components/schemas/Nope'
    "a/b~c":
      type: string
`

func mustDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(resolverDoc), FormatYAML, "resolver.yaml")
	require.NoError(t, err)
	return doc
}

func TestResolve(t *testing.T) {
	doc := mustDoc(t)

	tests := []struct {
		name string
		ref  string
	}{
		{"component schema", "#/components/schemas/Pet"},
		{"escaped path segment", "#/paths/~1pets/get"},
		{"escaped component name", "#/components/schemas/a~1b~0c"},
		{"array index", "#/paths/~1pets/get/parameters/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := doc.Resolve(tt.ref)
			require.NoError(t, err)
			require.NotNil(t, node)
		})
	}

	node, err := doc.Resolve("#/paths/~1pets/get/parameters/1")
	require.NoError(t, err)
	assert.Equal(t, "offset", StringValue(Lookup(node, "name")))

	root, err := doc.Resolve("#")
	require.NoError(t, err)
	assert.Same(t, doc.Root, root)
}

func TestResolveErrors(t *testing.T) {
	doc := mustDoc(t)

	tests := []struct {
		name     string
		ref      string
		external bool
	}{
		{"missing key", "#/components/schemas/Missing", false},
		{"index out of range", "#/paths/~1pets/get/parameters/5", false},
		{"non-numeric index", "#/paths/~1pets/get/parameters/first", false},
		{"through a scalar", "#/openapi/x", false},
		{"not a pointer", "#components", false},
		{"external file", "other.yaml#/components/schemas/Pet", true},
		{"remote url", "https://example.com/api.yaml#/x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := doc.Resolve(tt.ref)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrReference))
			assert.Equal(t, tt.external, errors.Is(err, oaserrors.ErrExternalReference))

			var rerr *oaserrors.ReferenceError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.ref, rerr.Ref)
		})
	}

	var empty *Document
	_, err := empty.Resolve("#/x")
	assert.Error(t, err)
}

func TestFollow(t *testing.T) {
	doc := mustDoc(t)
	schemas := Lookup(Lookup(doc.Root, "components"), "schemas")

	t.Run("plain node is returned unchanged", func(t *testing.T) {
		pet := Lookup(schemas, "Pet")
		got, chain, err := doc.Follow(pet)
		require.NoError(t, err)
		assert.Same(t, pet, got)
		assert.Empty(t, chain)
	})

	t.Run("chain of references", func(t *testing.T) {
		got, chain, err := doc.Follow(Lookup(schemas, "Alias"))
		require.NoError(t, err)
		assert.Equal(t, "object", StringValue(Lookup(got, "type")))
		assert.Equal(t, []string{"#/components/schemas/Middle", "#/components/schemas/Pet"}, chain)
	})

	t.Run("circular chain", func(t *testing.T) {
		_, _, err := doc.Follow(Lookup(schemas, "LoopA"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "circular")
	})

	t.Run("dangling reference", func(t *testing.T) {
		_, chain, err := doc.Follow(Lookup(schemas, "Dangling"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrReference))
		assert.Equal(t, []string{"#/components/schemas/Nope"}, chain)
	})
}
