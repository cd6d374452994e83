package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/erraggy/oasbreak"
	"github.com/erraggy/oasbreak/oaserrors"
	"github.com/erraggy/oasbreak/parser"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// GitHubSource fetches a document through the GitHub contents API.
type GitHubSource struct {
	owner  string
	repo   string
	path   string
	ref    string
	format parser.Format

	token      string
	baseURL    string
	httpClient *http.Client
	logger     parser.Logger
}

// GitHubOption configures a GitHubSource.
type GitHubOption func(*GitHubSource) error

// NewGitHubSource returns a source for path in repository ("owner/name").
// A leading "./" or "/" is stripped from path.
func NewGitHubSource(repository, path string, opts ...GitHubOption) (*GitHubSource, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(repository), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, &oaserrors.ConfigError{Option: "repository", Value: repository, Message: "must be in owner/name form"}
	}
	path = NormalizePath(path)
	if path == "" {
		return nil, &oaserrors.ConfigError{Option: "path", Value: path, Message: "file path is required"}
	}

	s := &GitHubSource{owner: owner, repo: repo, path: path}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = parser.OrNop(s.logger)
	return s, nil
}

// NormalizePath strips a leading "./" and any leading slashes so the path is
// relative to the repository root.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	for strings.HasPrefix(path, "./") {
		path = strings.TrimPrefix(path, "./")
	}
	return strings.TrimLeft(path, "/")
}

// WithRef selects the branch, tag or commit. Empty means the default branch.
func WithRef(ref string) GitHubOption {
	return func(s *GitHubSource) error {
		s.ref = ref
		return nil
	}
}

// WithToken authenticates requests with a personal access or Actions token.
func WithToken(token string) GitHubOption {
	return func(s *GitHubSource) error {
		s.token = token
		return nil
	}
}

// WithGitHubFormat selects the decoder for the fetched bytes.
func WithGitHubFormat(format parser.Format) GitHubOption {
	return func(s *GitHubSource) error {
		s.format = format
		return nil
	}
}

// WithBaseURL points the client at a GitHub Enterprise (or test) API root.
func WithBaseURL(baseURL string) GitHubOption {
	return func(s *GitHubSource) error {
		if baseURL == "" {
			return nil
		}
		if _, err := url.Parse(baseURL); err != nil {
			return &oaserrors.ConfigError{Option: "api-url", Value: baseURL, Message: "invalid URL", Cause: err}
		}
		s.baseURL = baseURL
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for requests. When a token is
// also set, the client's transport is wrapped with the token source.
func WithHTTPClient(client *http.Client) GitHubOption {
	return func(s *GitHubSource) error {
		s.httpClient = client
		return nil
	}
}

// WithGitHubLogger sets the logger for request diagnostics.
func WithGitHubLogger(l parser.Logger) GitHubOption {
	return func(s *GitHubSource) error {
		s.logger = l
		return nil
	}
}

// String returns "owner/repo@ref:path", with "default" for an empty ref.
func (s *GitHubSource) String() string {
	ref := s.ref
	if ref == "" {
		ref = "default"
	}
	return fmt.Sprintf("%s/%s@%s:%s", s.owner, s.repo, ref, s.path)
}

// Path returns the normalized repository path.
func (s *GitHubSource) Path() string {
	return s.path
}

func (s *GitHubSource) client(ctx context.Context) (*gh.Client, error) {
	hc := s.httpClient
	if s.token != "" {
		if hc != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Timeout = DefaultTimeout
	} else if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}

	client := gh.NewClient(hc)
	client.UserAgent = oasbreak.UserAgent()
	if s.baseURL != "" {
		base := s.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}
	return client, nil
}

// Load fetches and parses the document.
func (s *GitHubSource) Load(ctx context.Context) (*parser.Document, error) {
	data, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := parser.ParseReader(bytes.NewReader(data), s.format, s.path)
	if err != nil {
		return nil, classifyParse(s.String(), err)
	}
	doc.Path = s.String()
	return doc, nil
}

func (s *GitHubSource) fetch(ctx context.Context) ([]byte, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, &oaserrors.LoadError{Source: s.String(), Kind: oaserrors.LoadErrorRead, Message: "invalid API URL", Cause: err}
	}

	opts := &gh.RepositoryContentGetOptions{Ref: s.ref}
	s.logger.Debug("fetching document", "source", s.String())
	file, dir, _, err := client.Repositories.GetContents(ctx, s.owner, s.repo, s.path, opts)
	if err != nil {
		return nil, s.wrapError(err, "get contents")
	}
	if file == nil {
		return nil, &oaserrors.LoadError{
			Source:  s.String(),
			Kind:    oaserrors.LoadErrorNotFound,
			Message: fmt.Sprintf("path is a directory with %d entries, not a file", len(dir)),
		}
	}

	// Files over 1MB come back without inline content.
	if file.GetEncoding() == "none" {
		s.logger.Debug("document exceeds inline content limit, downloading", "source", s.String(), "size", file.GetSize())
		return s.download(ctx, client, opts)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, &oaserrors.LoadError{Source: s.String(), Kind: oaserrors.LoadErrorRead, Message: "decode content", Cause: err}
	}
	return []byte(content), nil
}

func (s *GitHubSource) download(ctx context.Context, client *gh.Client, opts *gh.RepositoryContentGetOptions) ([]byte, error) {
	rc, _, err := client.Repositories.DownloadContents(ctx, s.owner, s.repo, s.path, opts)
	if err != nil {
		return nil, s.wrapError(err, "download contents")
	}
	defer func() { _ = rc.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(rc, parser.MaxFileSize+1)); err != nil {
		return nil, &oaserrors.LoadError{Source: s.String(), Kind: oaserrors.LoadErrorNetwork, Message: "download contents", Cause: err}
	}
	return buf.Bytes(), nil
}

// wrapError converts go-github errors to load errors.
func (s *GitHubSource) wrapError(err error, operation string) error {
	le := &oaserrors.LoadError{Source: s.String(), Kind: oaserrors.LoadErrorNetwork, Message: operation, Cause: err}

	var rateLimitErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var ghErr *gh.ErrorResponse
	switch {
	case errors.As(err, &rateLimitErr), errors.As(err, &abuseErr):
		le.Message = operation + ": rate limited"
	case errors.As(err, &ghErr) && ghErr.Response != nil:
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			le.Kind = oaserrors.LoadErrorNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			le.Kind = oaserrors.LoadErrorAuth
		}
		le.Message = fmt.Sprintf("%s: HTTP %d", operation, ghErr.Response.StatusCode)
	}
	return le
}
