package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasbreak/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Format selects how raw document bytes are decoded.
type Format int

const (
	// FormatAuto picks JSON or YAML from the file extension, then from the content.
	FormatAuto Format = iota
	// FormatJSON decodes strict JSON.
	FormatJSON
	// FormatYAML decodes YAML (which also accepts JSON).
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// ParseFormat converts a user-supplied format selector into a Format.
// Matching is case-insensitive; "" and "auto" select FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, &oaserrors.ConfigError{Option: "format", Value: s, Message: "must be json, yaml or auto"}
	}
}

// DetectFormat resolves FormatAuto for a document named path with content data.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Document is one parsed revision of an API description.
//
// The tree keeps the source order of every mapping so that comparison output
// follows document order. A Document is never mutated after parsing.
type Document struct {
	// Root is the top-level mapping node
	Root *yaml.Node
	// Path is the file path or source identifier the document was read from
	Path string
	// Format is the format the document was decoded with
	Format Format
	// SourceSize is the size of the raw input in bytes
	SourceSize int64
}

// Paths returns the document's paths mapping, or nil when it has none.
func (d *Document) Paths() *yaml.Node {
	if d == nil {
		return nil
	}
	return Lookup(d.Root, "paths")
}

// Info returns the value of info.<field> as a string, or "" when absent.
func (d *Document) Info(field string) string {
	if d == nil {
		return ""
	}
	return StringValue(Lookup(Lookup(d.Root, "info"), field))
}

// Parse decodes data into a Document. name identifies the source in errors
// and in Document.Path.
func Parse(data []byte, format Format, name string) (*Document, error) {
	if format == FormatAuto {
		format = DetectFormat(name, data)
	}

	if format == FormatJSON && !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		perr := &oaserrors.ParseError{Path: name, Message: "invalid JSON", Cause: err}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			perr.Line, perr.Column = lineColumn(data, syntaxErr.Offset)
		}
		return nil, perr
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: name, Message: "invalid " + format.String(), Cause: err}
	}

	content := Deref(&root)
	if content == nil || content.Kind != yaml.MappingNode {
		perr := &oaserrors.ParseError{Path: name, Message: "document root must be a mapping"}
		if content != nil {
			perr.Line, perr.Column = content.Line, content.Column
		}
		return nil, perr
	}

	return &Document{
		Root:       content,
		Path:       name,
		Format:     format,
		SourceSize: int64(len(data)),
	}, nil
}

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// String returns a short description used in log lines.
func (d *Document) String() string {
	if d == nil {
		return "<nil document>"
	}
	return fmt.Sprintf("%s (%s, %s)", d.Path, d.Format, FormatBytes(d.SourceSize))
}

// FormatBytes formats a byte count as a human-readable string (B, KiB, MiB).
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 1; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KM"[exp])
}
