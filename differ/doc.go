/*
Package differ detects breaking changes between two revisions of an OpenAPI document.

# Overview

The detector walks the previous revision's paths in source order and checks
that everything a client could rely on still holds in the current revision:
paths, operations, responses, parameters and the JSON request and response
schemas. Every incompatibility becomes a [Finding] whose Kind is one of the
rule names in the catalog.

# Usage

The package provides two API styles:

 1. Package-level functions: [DetectBreakingChanges] for parsed documents and
    [DetectWithOptions] for files
 2. Struct-based API: [Detector] with configurable Rules and Logger

# Rule Catalog

Each run builds a [Catalog] from the requested rule names. With no names every
rule is active; otherwise only the named rules are, in the order given.
Unknown names are logged as warnings and skipped. A detected change whose kind
is not in the active catalog is dropped, which is how filtering works.

  - removed-paths, removed-http-methods (critical)
  - required-request-body, new-schema-definition, schema-type-changed
  - schema-new-required-properties, schema-property-type-changed, schema-properties-removed
  - multiple-of-type-changed, fewer-multiple-of-options
  - response-removed, new-required-parameters, parameters-removed, parameter-type-changed

# Schemas

Schemas are resolved through local $ref chains and classified as object,
composed (oneOf, allOf, anyOf), array, primitive or opaque by the previous
revision's shape. Composed members are compared by position. Opaque schemas
compare by deep equality. A reference that is already being compared on the
same side counts as equal, so recursive models terminate.

# Example

	result, err := differ.DetectWithOptions(
		differ.WithPreviousFilePath("api-v1.yaml"),
		differ.WithCurrentFilePath("api-v2.yaml"),
	)
	if err != nil {
		log.Fatal(err)
	}
	for _, f := range result.Findings {
		fmt.Printf("%s: %s\n", f.Kind, f.Message)
	}

# Related Packages

  - [github.com/erraggy/oasbreak/parser] - Parse documents into ordered trees
  - [github.com/erraggy/oasbreak/loader] - Load revisions from files or GitHub
*/
package differ
