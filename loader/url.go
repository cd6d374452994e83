package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/erraggy/oasbreak"
	"github.com/erraggy/oasbreak/oaserrors"
	"github.com/erraggy/oasbreak/parser"
)

// URLSource fetches a document over HTTP(S).
type URLSource struct {
	// URL is the absolute http or https address of the document
	URL string
	// Format selects the decoder; FormatAuto detects it
	Format parser.Format
	// Client performs the request; nil uses a client with DefaultTimeout
	Client *http.Client
}

// NewURLSource validates rawURL and returns a source for it.
func NewURLSource(rawURL string, format parser.Format, client *http.Client) (*URLSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &oaserrors.ConfigError{Option: "url", Value: rawURL, Message: "must be an absolute http or https URL", Cause: err}
	}
	return &URLSource{URL: rawURL, Format: format, Client: client}, nil
}

// String returns the URL.
func (s *URLSource) String() string {
	return s.URL
}

// Load fetches and parses the document.
func (s *URLSource) Load(ctx context.Context) (*parser.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &oaserrors.LoadError{Source: s.URL, Kind: oaserrors.LoadErrorRead, Message: "build request", Cause: err}
	}
	req.Header.Set("User-Agent", oasbreak.UserAgent())
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &oaserrors.LoadError{Source: s.URL, Kind: oaserrors.LoadErrorNetwork, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &oaserrors.LoadError{Source: s.URL, Kind: oaserrors.LoadErrorNotFound, Message: "HTTP 404"}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &oaserrors.LoadError{Source: s.URL, Kind: oaserrors.LoadErrorAuth, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	case resp.StatusCode >= 300:
		return nil, &oaserrors.LoadError{Source: s.URL, Kind: oaserrors.LoadErrorNetwork, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	doc, err := parser.ParseReader(io.LimitReader(resp.Body, parser.MaxFileSize+1), s.Format, s.URL)
	if err != nil {
		return nil, classifyParse(s.URL, err)
	}
	return doc, nil
}
