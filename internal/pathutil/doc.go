// Package pathutil provides helpers for the local $ref pointers used inside API
// description documents and their RFC 6901 token escaping.
package pathutil
