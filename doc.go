// Package oasbreak detects breaking changes between two revisions of an OpenAPI
// description so that a CI pipeline can block incompatible releases.
//
// # Overview
//
// The module is organized around a comparison core and the collaborators that feed it:
//
//   - parser: Decode JSON or YAML into an order-preserving document tree and resolve
//     in-document $ref pointers
//   - differ: Compare two document trees and report typed breaking-change findings
//   - loader: Load the current revision from disk and the previous revision from GitHub
//
// # Quick Start
//
// Compare two local files with every rule enabled:
//
//	import "github.com/erraggy/oasbreak/differ"
//
//	result, err := differ.DetectWithOptions(
//		differ.WithPreviousFilePath("openapi-main.yaml"),
//		differ.WithCurrentFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range result.Findings {
//		fmt.Println(f)
//	}
//
// Restrict detection to a subset of rules:
//
//	result, err := differ.DetectWithOptions(
//		differ.WithPreviousParsed(previous),
//		differ.WithCurrentParsed(current),
//		differ.WithRules("removed-paths", "removed-http-methods"),
//	)
//
// # Command Line
//
// The oasbreak command wraps the library for CI use:
//
//	oasbreak check --spec openapi.yaml --format yaml --repository owner/name --token $GITHUB_TOKEN
//	oasbreak check --spec openapi.yaml --previous openapi-main.yaml
//	oasbreak rules
//	oasbreak mcp
//
// When run inside GitHub Actions the check command reads the INPUT_* variables, writes
// the breaking-changes-detected output and fails the job when findings are reported.
package oasbreak
