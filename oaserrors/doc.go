// Package oaserrors provides structured error types for oasbreak.
//
// Import path: github.com/erraggy/oasbreak/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures and structural issues
//   - [ReferenceError]: $ref resolution failures and cross-document references
//   - [ConfigError]: Invalid configuration or input options
//   - [LoadError]: A document could not be acquired; [LoadErrorKind] tells a missing
//     document apart from a credential, network or decoding failure
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError], and [LoadError] with kind [LoadErrorParse]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrExternalReference]: Matches [ReferenceError] with IsExternal=true
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrLoad]: Matches any [LoadError]
//   - [ErrNotFound], [ErrAuth], [ErrNetwork]: Match [LoadError] by kind
//
// # Usage
//
//	doc, err := loader.Load(ctx, src)
//	if err != nil {
//	    switch {
//	    case errors.Is(err, oaserrors.ErrNotFound):
//	        // the document does not exist on the base branch yet
//	    case errors.Is(err, oaserrors.ErrAuth):
//	        // token is missing or lacks read access
//	    }
//	}
package oaserrors
