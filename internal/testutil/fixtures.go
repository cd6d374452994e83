// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbreak/internal/fileutil"
	"github.com/erraggy/oasbreak/parser"
)

// PetStoreYAML is a small OAS 3.0 document with one collection path, one
// item path and shared components. Tests derive revisions from it with
// strings.Replace.
const PetStoreYAML = `openapi: 3.0.3
info:
  title: Pet Store
  version: 1.0.0
paths:
  /pets:
    get:
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
    post:
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        "201":
          description: created
  /pets/{id}:
    get:
      parameters:
        - $ref: '#/components/parameters/PetID'
      responses:
        "200":
          $ref: '#/components/responses/PetResponse'
        "404":
          description: not found
components:
  parameters:
    PetID:
      name: id
      in: path
      required: true
      schema:
        type: string
  responses:
    PetResponse:
      description: a pet
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Pet'
  schemas:
    Pet:
      type: object
      required: [id]
      properties:
        id:
          type: integer
        name:
          type: string
`

// MustParse parses src as YAML (or JSON) and fails the test on error.
func MustParse(t *testing.T, src string) *parser.Document {
	t.Helper()

	doc, err := parser.Parse([]byte(src), parser.FormatAuto, "inline.yaml")
	if err != nil {
		t.Fatalf("Failed to parse inline document: %v", err)
	}
	return doc
}

// MustParsePetStore parses PetStoreYAML after applying replacements, given
// as old/new pairs passed to strings.Replace with n=1.
func MustParsePetStore(t *testing.T, replacements ...string) *parser.Document {
	t.Helper()

	if len(replacements)%2 != 0 {
		t.Fatalf("MustParsePetStore: odd number of replacement arguments")
	}
	src := PetStoreYAML
	for i := 0; i < len(replacements); i += 2 {
		if !strings.Contains(src, replacements[i]) {
			t.Fatalf("MustParsePetStore: %q not found in fixture", replacements[i])
		}
		src = strings.Replace(src, replacements[i], replacements[i+1], 1)
	}
	return MustParse(t, src)
}

// WriteTempFile writes content to name inside a fresh temp dir and returns the path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), fileutil.OwnerReadWrite); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}

// WriteTempYAML marshals doc to YAML and writes it to a temporary file.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals doc to indented JSON and writes it to a temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", string(data))
}

// LogEntry is one call captured by RecordingLogger.
type LogEntry struct {
	Level string
	Msg   string
	Attrs []any
}

// Attr returns the value logged under key, or nil.
func (e LogEntry) Attr(key string) any {
	for i := 0; i+1 < len(e.Attrs); i += 2 {
		if k, ok := e.Attrs[i].(string); ok && k == key {
			return e.Attrs[i+1]
		}
	}
	return nil
}

// String renders the entry as "LEVEL msg k=v ...".
func (e LogEntry) String() string {
	var sb strings.Builder
	sb.WriteString(e.Level + " " + e.Msg)
	for i := 0; i+1 < len(e.Attrs); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", e.Attrs[i], e.Attrs[i+1])
	}
	return sb.String()
}

// RecordingLogger is a parser.Logger that keeps every entry in memory.
type RecordingLogger struct {
	store  *logStore
	prefix []any
}

type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewRecordingLogger returns an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{store: &logStore{}}
}

func (r *RecordingLogger) record(level, msg string, attrs []any) {
	all := append(append([]any{}, r.prefix...), attrs...)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entries = append(r.store.entries, LogEntry{Level: level, Msg: msg, Attrs: all})
}

// Debug implements parser.Logger.
func (r *RecordingLogger) Debug(msg string, attrs ...any) { r.record("DEBUG", msg, attrs) }

// Info implements parser.Logger.
func (r *RecordingLogger) Info(msg string, attrs ...any) { r.record("INFO", msg, attrs) }

// Warn implements parser.Logger.
func (r *RecordingLogger) Warn(msg string, attrs ...any) { r.record("WARN", msg, attrs) }

// Error implements parser.Logger.
func (r *RecordingLogger) Error(msg string, attrs ...any) { r.record("ERROR", msg, attrs) }

// With implements parser.Logger. The child shares the parent's entries.
func (r *RecordingLogger) With(attrs ...any) parser.Logger {
	return &RecordingLogger{store: r.store, prefix: append(append([]any{}, r.prefix...), attrs...)}
}

// Entries returns the captured entries, optionally filtered by level.
func (r *RecordingLogger) Entries(level ...string) []LogEntry {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []LogEntry
	for _, e := range r.store.entries {
		if len(level) == 0 || e.Level == level[0] {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns the captured WARN entries.
func (r *RecordingLogger) Warnings() []LogEntry {
	return r.Entries("WARN")
}

var _ parser.Logger = (*RecordingLogger)(nil)
