package differ

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasbreak/internal/options"
	"github.com/erraggy/oasbreak/internal/severity"
	"github.com/erraggy/oasbreak/oaserrors"
	"github.com/erraggy/oasbreak/parser"
)

// Result is the outcome of comparing two revisions.
type Result struct {
	// PreviousPath identifies the previous revision
	PreviousPath string `json:"previous" yaml:"previous"`
	// CurrentPath identifies the current revision
	CurrentPath string `json:"current" yaml:"current"`
	// Rules lists the active rule names in catalog order
	Rules []string `json:"rules" yaml:"rules"`
	// Findings holds every breaking change in document traversal order
	Findings []Finding `json:"findings" yaml:"findings"`
	// HasBreakingChanges is true when Findings is not empty
	HasBreakingChanges bool `json:"breakingChangesDetected" yaml:"breakingChangesDetected"`
}

// CountBySeverity returns how many findings carry level.
func (r *Result) CountBySeverity(level severity.Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == level {
			n++
		}
	}
	return n
}

// Detector compares API description revisions
type Detector struct {
	// Rules restricts detection to the named rules, in this order.
	// Empty means every rule in the catalog.
	Rules []string
	// Logger receives the active rule list and non-fatal warnings.
	// When nil, nothing is logged.
	Logger parser.Logger
}

// New creates a new Detector instance with default settings
func New() *Detector {
	return &Detector{}
}

// Detect compares previous against current.
// The only error is a nil document; structural differences are findings.
func (d *Detector) Detect(previous, current *parser.Document) (*Result, error) {
	if previous == nil || previous.Root == nil {
		return nil, &oaserrors.ConfigError{Option: "previous", Message: "previous document is required"}
	}
	if current == nil || current.Root == nil {
		return nil, &oaserrors.ConfigError{Option: "current", Message: "current document is required"}
	}

	logger := parser.OrNop(d.Logger)
	catalog := NewCatalog(d.Rules, logger)
	logger.Info("detecting breaking change types", "rules", strings.Join(catalog.Names(), ", "))

	c := newComparison(previous, current, catalog, logger)
	c.comparePaths()

	findings := c.sink.All()
	return &Result{
		PreviousPath:       previous.Path,
		CurrentPath:        current.Path,
		Rules:              catalog.Names(),
		Findings:           findings,
		HasBreakingChanges: len(findings) > 0,
	}, nil
}

// DetectBreakingChanges is a convenience function that compares two parsed
// documents with the named rules (all when empty) and returns the findings.
// It returns nil when either document is nil.
func DetectBreakingChanges(previous, current *parser.Document, ruleNames []string) []Finding {
	d := &Detector{Rules: ruleNames}
	result, err := d.Detect(previous, current)
	if err != nil {
		return nil
	}
	return result.Findings
}

// Option is a function that configures a detection run
type Option func(*detectConfig) error

type detectConfig struct {
	previousPath   *string
	previousParsed *parser.Document
	currentPath    *string
	currentParsed  *parser.Document

	format Format
	rules  []string
	logger parser.Logger
}

// Format is an alias of parser.Format for callers that only import differ.
type Format = parser.Format

// DetectWithOptions loads both revisions and compares them.
//
// Example:
//
//	result, err := differ.DetectWithOptions(
//	    differ.WithPreviousFilePath("api-v1.yaml"),
//	    differ.WithCurrentFilePath("api-v2.yaml"),
//	    differ.WithRules("removed-paths", "removed-http-methods"),
//	)
func DetectWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	previous, err := cfg.load(cfg.previousPath, cfg.previousParsed)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to parse previous document: %w", err)
	}
	current, err := cfg.load(cfg.currentPath, cfg.currentParsed)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to parse current document: %w", err)
	}

	d := &Detector{Rules: cfg.rules, Logger: cfg.logger}
	return d.Detect(previous, current)
}

func (cfg *detectConfig) load(path *string, parsed *parser.Document) (*parser.Document, error) {
	if parsed != nil {
		return parsed, nil
	}
	return parser.ParseWithOptions(
		parser.WithFilePath(*path),
		parser.WithFormat(cfg.format),
		parser.WithLogger(cfg.logger),
	)
}

func applyOptions(opts ...Option) (*detectConfig, error) {
	cfg := &detectConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = parser.OrNop(cfg.logger)

	if err := options.ValidateSingleInputSource("previous", "WithPreviousFilePath or WithPreviousParsed",
		cfg.previousPath != nil, cfg.previousParsed != nil); err != nil {
		return nil, err
	}
	if err := options.ValidateSingleInputSource("current", "WithCurrentFilePath or WithCurrentParsed",
		cfg.currentPath != nil, cfg.currentParsed != nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithPreviousFilePath reads the previous revision from a file
func WithPreviousFilePath(path string) Option {
	return func(cfg *detectConfig) error {
		cfg.previousPath = &path
		return nil
	}
}

// WithPreviousParsed uses an already parsed previous revision
func WithPreviousParsed(doc *parser.Document) Option {
	return func(cfg *detectConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "previous", Message: "parsed document is nil"}
		}
		cfg.previousParsed = doc
		return nil
	}
}

// WithCurrentFilePath reads the current revision from a file
func WithCurrentFilePath(path string) Option {
	return func(cfg *detectConfig) error {
		cfg.currentPath = &path
		return nil
	}
}

// WithCurrentParsed uses an already parsed current revision
func WithCurrentParsed(doc *parser.Document) Option {
	return func(cfg *detectConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "current", Message: "parsed document is nil"}
		}
		cfg.currentParsed = doc
		return nil
	}
}

// WithFormat forces the format used when reading files
func WithFormat(format Format) Option {
	return func(cfg *detectConfig) error {
		cfg.format = format
		return nil
	}
}

// WithRules restricts detection to the named rules
func WithRules(names ...string) Option {
	return func(cfg *detectConfig) error {
		cfg.rules = append(cfg.rules, names...)
		return nil
	}
}

// WithLogger sets the logger for the active rule list and warnings
func WithLogger(l parser.Logger) Option {
	return func(cfg *detectConfig) error {
		cfg.logger = l
		return nil
	}
}
