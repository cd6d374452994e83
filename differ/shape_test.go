package differ

import (
	"testing"

	"github.com/erraggy/oasbreak/internal/testutil"
	"github.com/erraggy/oasbreak/parser"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	doc := testutil.MustParse(t, `
object: {type: object, oneOf: [{type: string}], required: [a, b]}
oneOf: {oneOf: [{type: string}, {type: integer}]}
allOf: {allOf: [{type: string}], anyOf: [{type: string}]}
anyOf: {anyOf: []}
array: {type: array, items: {type: string}}
string: {type: string}
boolean: {type: boolean}
typeList: {type: [string, "null"]}
freeform: {description: anything}
`)
	shape := func(key string) schemaShape { return classify(parser.Lookup(doc.Root, key)) }

	obj := shape("object")
	assert.Equal(t, shapeObject, obj.kind, "type object wins over composition")
	assert.True(t, obj.hasRequired)
	assert.Equal(t, []string{"a", "b"}, obj.required)
	assert.Nil(t, obj.properties)

	assert.Equal(t, shapeComposed, shape("oneOf").kind)
	assert.Len(t, shape("oneOf").members, 2)
	assert.Equal(t, tagAllOf, shape("allOf").tag, "allOf is checked before anyOf")
	assert.Equal(t, tagAnyOf, shape("anyOf").tag)
	assert.Empty(t, shape("anyOf").members)

	assert.Equal(t, shapeArray, shape("array").kind)
	assert.NotNil(t, shape("array").items)

	assert.Equal(t, shapePrimitive, shape("string").kind)
	assert.Equal(t, "boolean", shape("boolean").primitive)

	assert.Equal(t, shapeOpaque, shape("typeList").kind)
	assert.Equal(t, shapeOpaque, shape("freeform").kind)
	assert.Equal(t, "opaque", shapeOpaque.String())
}
