package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/erraggy/oasbreak/oaserrors"
	"github.com/erraggy/oasbreak/parser"
)

// Source produces one parsed revision of a document.
type Source interface {
	// Load retrieves and parses the document.
	// Failures are returned as *oaserrors.LoadError.
	Load(ctx context.Context) (*parser.Document, error)
	// String identifies the source in logs and errors.
	String() string
}

// FileSource reads a document from the local filesystem.
type FileSource struct {
	// Path is the file to read
	Path string
	// Format selects the decoder; FormatAuto detects it
	Format parser.Format
}

// NewFileSource returns a FileSource for path.
func NewFileSource(path string, format parser.Format) *FileSource {
	return &FileSource{Path: path, Format: format}
}

// String returns the file path.
func (s *FileSource) String() string {
	return s.Path
}

// Load reads and parses the file.
func (s *FileSource) Load(ctx context.Context) (*parser.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &oaserrors.LoadError{Source: s.Path, Kind: oaserrors.LoadErrorRead, Cause: err}
	}
	f, err := os.Open(s.Path)
	if err != nil {
		kind := oaserrors.LoadErrorRead
		if errors.Is(err, fs.ErrNotExist) {
			kind = oaserrors.LoadErrorNotFound
		}
		return nil, &oaserrors.LoadError{Source: s.Path, Kind: kind, Cause: err}
	}
	defer func() { _ = f.Close() }()

	doc, err := parser.ParseReader(f, s.Format, s.Path)
	if err != nil {
		return nil, classifyParse(s.Path, err)
	}
	return doc, nil
}

// classifyParse wraps a parser failure, keeping read failures apart from
// decode failures.
func classifyParse(source string, err error) error {
	kind := oaserrors.LoadErrorRead
	if errors.Is(err, oaserrors.ErrParse) {
		kind = oaserrors.LoadErrorParse
	}
	return &oaserrors.LoadError{Source: source, Kind: kind, Cause: err}
}
