package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ProbabilityPit/internal/domain/repository"
	xhttp "ProbabilityPit/pkg/http"
)

const userAgent = "probabilitypit-content/1.0"

// HTTPContentSource fetches lesson files from a remote base URL, e.g. a CDN bucket.
type HTTPContentSource struct {
	baseURL string
	client  *xhttp.Client
}

// NewHTTPContentSource builds a source rooted at baseURL.
func NewHTTPContentSource(baseURL string, timeout time.Duration) *HTTPContentSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPContentSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithUserAgent(userAgent)),
	}
}

func (s *HTTPContentSource) Name() string { return "http" }

func (s *HTTPContentSource) Fetch(ctx context.Context, file string) ([]byte, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("content base url not configured")
	}

	var body []byte
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     s.baseURL + "/" + url.PathEscape(file),
		Headers: map[string]string{"Accept": "text/markdown, text/plain"},
	}, &body)
	if err != nil {
		if xhttp.IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%s: %w", file, repository.ErrContentNotFound)
		}
		return nil, fmt.Errorf("fetch %s: %w", file, err)
	}
	return body, nil
}

var _ repository.ContentSource = (*HTTPContentSource)(nil)
