package differ

import (
	"github.com/erraggy/oasbreak/internal/httputil"
	"github.com/erraggy/oasbreak/parser"
	"go.yaml.in/yaml/v4"
)

// comparePaths walks the previous document's paths in source order.
func (c *comparison) comparePaths() {
	currentPaths := c.current.Paths()
	for _, path := range parser.Pairs(c.previous.Paths()) {
		currentItem := parser.Lookup(currentPaths, path.Key)
		if currentItem == nil {
			c.record(RuleRemovedPaths, path.Key)
			continue
		}
		c.comparePathItem(path.Key, path.Value, currentItem)
	}
}

func (c *comparison) comparePathItem(path string, previous, current *yaml.Node) {
	c.compareParameters(path,
		parser.Lookup(previous, httputil.ParametersKey),
		parser.Lookup(current, httputil.ParametersKey))

	for _, op := range parser.Pairs(previous) {
		if !httputil.IsHTTPMethod(op.Key) {
			continue
		}
		label := c.operationLabel(op.Key, path)
		currentOp := parser.Lookup(current, op.Key)
		if currentOp == nil {
			c.record(RuleRemovedHTTPMethods, label)
			continue
		}
		c.compareOperation(label, op.Value, currentOp)
	}
}

func (c *comparison) compareOperation(label string, previous, current *yaml.Node) {
	c.compareResponses(label, parser.Lookup(previous, "responses"), parser.Lookup(current, "responses"))
	c.compareParameters(label, parser.Lookup(previous, "parameters"), parser.Lookup(current, "parameters"))

	previousBody := c.requestBody(sidePrevious, previous)
	currentBody := c.requestBody(sideCurrent, current)
	if parser.BoolValue(parser.Lookup(currentBody, "required")) &&
		!parser.BoolValue(parser.Lookup(previousBody, "required")) {
		c.record(RuleRequiredRequestBody, label)
	}
	c.compareSchemas(label, jsonSchema(previousBody), jsonSchema(currentBody))
}

func (c *comparison) compareResponses(label string, previous, current *yaml.Node) {
	for _, resp := range parser.Pairs(previous) {
		currentResp := parser.Lookup(current, resp.Key)
		if currentResp == nil {
			c.record(RuleResponseRemoved, label+" is no longer allowed to return a '"+resp.Key+"' response")
			continue
		}
		previousResp, _ := c.follow(sidePrevious, resp.Value)
		currentResp, _ = c.follow(sideCurrent, currentResp)
		c.compareSchemas(label+" - "+resp.Key, jsonSchema(previousResp), jsonSchema(currentResp))
	}
}

// requestBody returns the operation's request body, resolved past any $ref.
func (c *comparison) requestBody(s side, op *yaml.Node) *yaml.Node {
	body := parser.Lookup(op, "requestBody")
	if body == nil {
		return nil
	}
	body, _ = c.follow(s, body)
	return body
}

// jsonSchema extracts content["application/json"].schema from a request
// body or response.
func jsonSchema(n *yaml.Node) *yaml.Node {
	media := parser.Lookup(parser.Lookup(n, "content"), httputil.MediaTypeJSON)
	return parser.Lookup(media, "schema")
}
