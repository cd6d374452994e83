package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasbreak/internal/options"
	"github.com/erraggy/oasbreak/oaserrors"
)

// MaxFileSize is the largest document accepted from a file or reader.
const MaxFileSize = 10 * 1024 * 1024 // 10MB

// ParseFile reads and parses the document at path.
func ParseFile(path string, format Format) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ParseReader(f, format, path)
}

// ParseReader reads up to MaxFileSize bytes from r and parses them.
func ParseReader(r io.Reader, format Format, name string) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read %s: %w", name, err)
	}
	if len(data) > MaxFileSize {
		return nil, &oaserrors.ParseError{
			Path:    name,
			Message: fmt.Sprintf("document exceeds maximum size of %s", FormatBytes(MaxFileSize)),
		}
	}
	return Parse(data, format, name)
}

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	format     Format
	sourceName *string
	logger     Logger
}

// ParseWithOptions parses a document using functional options.
//
// Example:
//
//	doc, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithFormat(parser.FormatYAML),
//	)
func ParseWithOptions(opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	name := "<bytes>"
	if cfg.sourceName != nil {
		name = *cfg.sourceName
	}

	var doc *Document
	switch {
	case cfg.filePath != nil:
		doc, err = ParseFile(*cfg.filePath, cfg.format)
		if err == nil && cfg.sourceName != nil {
			doc.Path = name
		}
	case cfg.reader != nil:
		if cfg.sourceName == nil {
			name = "<reader>"
		}
		doc, err = ParseReader(cfg.reader, cfg.format, name)
	default:
		doc, err = Parse(cfg.bytes, cfg.format, name)
	}
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("parsed document", "source", doc.Path, "format", doc.Format.String(), "size", FormatBytes(doc.SourceSize))
	return doc, nil
}

func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{format: FormatAuto}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = OrNop(cfg.logger)

	if err := options.ValidateSingleInputSource(
		"parser", "WithFilePath, WithReader, or WithBytes",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.bytes = data
		return nil
	}
}

// WithFormat forces the decoding format instead of detecting it.
func WithFormat(format Format) Option {
	return func(cfg *parseConfig) error {
		cfg.format = format
		return nil
	}
}

// WithSourceName sets the identifier reported in Document.Path and in errors.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}
