// Package parser loads OpenAPI documents into an order-preserving tree.
//
// Documents in JSON or YAML are decoded into [go.yaml.in/yaml/v4] nodes so
// that every mapping keeps the key order of the source. Nothing is
// validated beyond the root being a mapping: the breaking change detector
// tolerates missing or oddly shaped sections and simply finds nothing in them.
//
// # Quick Start
//
// Parse a file using functional options:
//
//	doc, err := parser.ParseWithOptions(
//		parser.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.Info("title"))
//
// Parse bytes already in memory, forcing the format:
//
//	doc, err := parser.Parse(data, parser.FormatJSON, "previous.json")
//
// # Navigating the tree
//
// [Lookup], [Pairs], [Items] and [StringValue] walk nodes without type
// assertions. Missing keys and explicit nulls both read as absent.
// [Document.Resolve] follows a local JSON Pointer such as
// "#/components/schemas/Pet"; [Document.Follow] walks a whole chain of
// $ref hops. References into other documents are reported as
// [oaserrors.ErrExternalReference].
package parser
