package differ_test

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasbreak/differ"
	"github.com/erraggy/oasbreak/parser"
)

const previousSpec = `openapi: 3.0.3
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
        "404":
          description: not found
  /stores:
    get:
      responses:
        "200":
          description: ok
`

// Example demonstrates comparing two parsed revisions with every rule enabled.
func Example() {
	previous, _ := parser.Parse([]byte(previousSpec), parser.FormatYAML, "v1.yaml")
	current, _ := parser.Parse([]byte(strings.Replace(previousSpec, "  /stores:", "  /shops:", 1)), parser.FormatYAML, "v2.yaml")

	for _, f := range differ.DetectBreakingChanges(previous, current, nil) {
		fmt.Printf("%s: %s\n", f.Kind, f.Message)
	}
	// Output:
	// removed-paths: /stores was removed
}

// ExampleDetector_Detect shows restricting detection to a subset of rules.
func ExampleDetector_Detect() {
	previous, _ := parser.Parse([]byte(previousSpec), parser.FormatYAML, "v1.yaml")
	trimmed := strings.Replace(previousSpec, "        \"404\":\n          description: not found\n", "", 1)
	trimmed = strings.Replace(trimmed, "  /stores:", "  /shops:", 1)
	current, _ := parser.Parse([]byte(trimmed), parser.FormatYAML, "v2.yaml")

	d := differ.New()
	d.Rules = []string{"response-removed"}
	result, err := d.Detect(previous, current)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(result.Rules)
	for _, f := range result.Findings {
		fmt.Println(f)
	}
	// Output:
	// [response-removed]
	// ✗ response-removed: GET /pets is no longer allowed to return a '404' response
}

// ExampleDefinitions lists the rule catalog.
func ExampleDefinitions() {
	for _, def := range differ.Definitions()[:3] {
		fmt.Printf("%-22s %s\n", def.Name, def.Severity)
	}
	// Output:
	// removed-paths          critical
	// removed-http-methods   critical
	// required-request-body  error
}
