// Package httputil provides HTTP-related constants and classification helpers
// for API description documents.
package httputil

import "strings"

// HTTP Method Constants, as they appear as PathItem keys
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
	MethodQuery   = "query" // OAS 3.2+ only
)

// ParametersKey is the PathItem key holding parameters shared by every operation.
const ParametersKey = "parameters"

// MediaTypeJSON is the only media type whose schemas are compared.
const MediaTypeJSON = "application/json"

var httpMethods = map[string]bool{
	MethodGet:     true,
	MethodPut:     true,
	MethodPost:    true,
	MethodDelete:  true,
	MethodOptions: true,
	MethodHead:    true,
	MethodPatch:   true,
	MethodTrace:   true,
	MethodQuery:   true,
}

// IsHTTPMethod reports whether a PathItem key names an operation.
// Matching is case-insensitive; keys such as "parameters", "summary",
// "servers", "$ref" and "x-*" extensions are not methods.
func IsHTTPMethod(key string) bool {
	return httpMethods[strings.ToLower(key)]
}

// IsParametersKey reports whether a PathItem key is the shared parameter list.
func IsParametersKey(key string) bool {
	return strings.EqualFold(key, ParametersKey)
}
