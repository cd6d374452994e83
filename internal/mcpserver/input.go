package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasbreak/loader"
	"github.com/erraggy/oasbreak/parser"
)

// specInput represents the ways a document revision can be provided to a tool.
// Exactly one of File, URL, Content, or GitHub must be set.
type specInput struct {
	File    string       `json:"file,omitempty"    jsonschema:"Path to an OpenAPI document on disk"`
	URL     string       `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI document from"`
	Content string       `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
	GitHub  *githubInput `json:"github,omitempty"  jsonschema:"A file in a GitHub repository"`
	Format  string       `json:"format,omitempty"  jsonschema:"Document format: json, yaml, or auto (default)"`
}

// githubInput locates a document revision in a GitHub repository.
type githubInput struct {
	Repository string `json:"repository"    jsonschema:"Repository in owner/name form"`
	Path       string `json:"path"          jsonschema:"File path within the repository"`
	Ref        string `json:"ref,omitempty" jsonschema:"Branch, tag, or commit SHA; empty uses the default branch"`
}

func (s specInput) count() int {
	n := 0
	for _, set := range []bool{s.File != "", s.URL != "", s.Content != "", s.GitHub != nil} {
		if set {
			n++
		}
	}
	return n
}

// cacheEntry holds a parsed document with LRU ordering and TTL expiry.
type cacheEntry struct {
	doc       *parser.Document
	lastUsed  time.Time
	expiresAt time.Time
}

// docCacheStore is a session-scoped cache of parsed documents. Documents
// are never mutated after parsing, so entries are shared between calls.
type docCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var docCache = &docCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *docCacheStore) get(key string) *parser.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.lastUsed = time.Now()
	return e.doc
}

// put stores doc for ttl, evicting the least recently used entry when full.
func (c *docCacheStore) put(key string, doc *parser.Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var lru string
		for k, e := range c.entries {
			if lru == "" || e.lastUsed.Before(c.entries[lru].lastUsed) {
				lru = k
			}
		}
		delete(c.entries, lru)
	}
	c.entries[key] = &cacheEntry{doc: doc, lastUsed: now, expiresAt: now.Add(ttl)}
}

// sweep removes all expired entries.
func (c *docCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper removes expired entries every interval until ctx is done.
// Only the first call starts a sweeper.
func (c *docCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *docCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *docCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the key and TTL for s, or "" when s cannot be cached.
// File keys include the modification time so edits invalidate them.
func (s specInput) cacheKey() (string, time.Duration) {
	switch {
	case s.File != "":
		abs, err := filepath.Abs(s.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", 0
		}
		return fmt.Sprintf("file:%s:%d:%s", abs, info.ModTime().UnixNano(), s.Format), cfg.CacheFileTTL
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s:%s", hex.EncodeToString(h[:]), s.Format), cfg.CacheContentTTL
	case s.URL != "":
		return fmt.Sprintf("url:%s:%s", s.URL, s.Format), cfg.CacheRemoteTTL
	case s.GitHub != nil:
		return fmt.Sprintf("github:%s@%s:%s:%s", s.GitHub.Repository, s.GitHub.Ref, loader.NormalizePath(s.GitHub.Path), s.Format), cfg.CacheRemoteTTL
	default:
		return "", 0
	}
}

// source builds the loader for a non-inline input.
func (s specInput) source(format parser.Format) (loader.Source, error) {
	switch {
	case s.File != "":
		return loader.NewFileSource(s.File, format), nil
	case s.URL != "":
		var client *http.Client
		if !cfg.AllowPrivateIPs {
			client = newSafeHTTPClient()
		}
		return loader.NewURLSource(s.URL, format, client)
	default:
		opts := []loader.GitHubOption{
			loader.WithRef(s.GitHub.Ref),
			loader.WithToken(cfg.GitHubToken),
			loader.WithGitHubFormat(format),
		}
		if cfg.GitHubAPIURL != "" {
			opts = append(opts, loader.WithBaseURL(cfg.GitHubAPIURL))
		}
		return loader.NewGitHubSource(s.GitHub.Repository, s.GitHub.Path, opts...)
	}
}

// resolve loads the document from whichever input was provided, using the
// cache when enabled.
func (s specInput) resolve(ctx context.Context) (*parser.Document, error) {
	if n := s.count(); n != 1 {
		return nil, fmt.Errorf("exactly one of file, url, content, or github must be provided (got %d)", n)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASBREAK_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	format, err := parser.ParseFormat(s.Format)
	if err != nil {
		return nil, err
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key, ttl = s.cacheKey()
		if key != "" {
			if doc := docCache.get(key); doc != nil {
				return doc, nil
			}
		}
	}

	var doc *parser.Document
	if s.Content != "" {
		doc, err = parser.ParseWithOptions(
			parser.WithBytes([]byte(s.Content)),
			parser.WithFormat(format),
			parser.WithSourceName("<content>"),
		)
	} else {
		var src loader.Source
		if src, err = s.source(format); err == nil {
			doc, err = src.Load(ctx)
		}
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		docCache.put(key, doc, ttl)
	}
	return doc, nil
}
