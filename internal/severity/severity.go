// Package severity provides the severity levels attached to breaking-change rules.
//
// Every rule in the differ catalog carries a default severity:
//   - SeverityCritical: A whole endpoint or operation disappeared
//   - SeverityError: An existing client request or response contract no longer holds
//   - SeverityWarning: Reserved for rules that flag risky but tolerable changes
//   - SeverityInfo: Reserved for informational notices
package severity

import "fmt"

// Severity indicates how disruptive a detected change is for existing clients.
type Severity int

const (
	// SeverityError indicates a change that breaks existing clients.
	SeverityError Severity = iota

	// SeverityWarning indicates a change that may break some clients.
	SeverityWarning

	// SeverityInfo indicates an informational notice.
	SeverityInfo

	// SeverityCritical indicates removal of an endpoint or operation.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Symbol returns the single-character marker used in text output.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError, SeverityCritical:
		return "✗"
	case SeverityWarning:
		return "⚠"
	case SeverityInfo:
		return "ℹ"
	default:
		return "·"
	}
}

// MarshalText encodes the severity as its string name for JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name produced by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("severity: unknown level %q", text)
	}
	return nil
}
