package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/flick/internal/domain"
)

const (
	// DefaultBaseURL is the catalog API root
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// CredentialSetting names the credential in configuration errors
	CredentialSetting = "TMDB_API_KEY"

	defaultTimeout  = 30 * time.Second
	defaultLanguage = "en-US"
	userAgent       = "Flick/1.0"
	redacted        = "REDACTED"
)

// Client implements domain.Catalog against the TMDB v3 API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.Catalog = (*Client)(nil)

// NewClient creates a catalog client. An empty baseURL uses DefaultBaseURL and
// a zero timeout uses 30s. A missing apiKey is reported once here and then
// fails every call with a ConfigurationError.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if apiKey == "" {
		logger.Warn("catalog credential is not set", "setting", CredentialSetting)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// IsConfigured returns true if the credential is present
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// FetchTrending returns this week's trending content across all media types
func (c *Client) FetchTrending(ctx context.Context) (*domain.ResultPage, error) {
	return c.getPage(ctx, "/trending/all/week", nil, "")
}

// FetchPopularShows returns the first page of popular TV shows
func (c *Client) FetchPopularShows(ctx context.Context) (*domain.ResultPage, error) {
	query := url.Values{}
	query.Set("page", "1")
	return c.getPage(ctx, "/tv/popular", query, domain.MediaTypeTV)
}

// Search runs a multi search across movies, shows and people. The query is
// not validated; a blank query is sent to the catalog as-is.
func (c *Client) Search(ctx context.Context, q string) (*domain.ResultPage, error) {
	query := url.Values{}
	query.Set("query", q)
	query.Set("page", "1")
	query.Set("include_adult", "false")
	return c.getPage(ctx, "/search/multi", query, "")
}

// FetchDetails looks up a single movie or show
func (c *Client) FetchDetails(ctx context.Context, id, mediaType string) (*domain.Details, error) {
	path := fmt.Sprintf("/%s/%s", url.PathEscape(mediaType), url.PathEscape(id))
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var resp detailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("catalog decode failed", "path", path, "error", err, "bodyLen", len(body))
		return nil, &domain.DecodeError{Err: err}
	}
	return mapDetails(resp, mediaType), nil
}

// getPage fetches and decodes a results envelope
func (c *Client) getPage(ctx context.Context, path string, query url.Values, fallbackType string) (*domain.ResultPage, error) {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var resp pageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("catalog decode failed", "path", path, "error", err, "bodyLen", len(body))
		return nil, &domain.DecodeError{Err: err}
	}
	return mapPage(resp, fallbackType), nil
}

// doRequest performs an authenticated GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &domain.ConfigurationError{Setting: CredentialSetting}
	}

	reqURL, logURL := c.buildURL(path, query)
	c.logger.Debug("catalog request", "url", logURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "url", logURL, "error", redactError(err, c.apiKey))
		return nil, &domain.TransportError{URL: logURL, Err: redactError(err, c.apiKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("catalog response read failed", "url", logURL, "error", err)
		return nil, &domain.TransportError{URL: logURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("catalog request error", "url", logURL, "status", resp.StatusCode, "body", string(body))
		return nil, &domain.RequestError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return body, nil
}

// buildURL returns the real request URL and a copy safe to log, with the
// credential replaced rather than substituted out of the final string.
func (c *Client) buildURL(path string, query url.Values) (string, string) {
	params := url.Values{}
	for k, v := range query {
		params[k] = v
	}
	params.Set("language", defaultLanguage)

	logParams := url.Values{}
	for k, v := range params {
		logParams[k] = v
	}
	logParams.Set("api_key", redacted)
	params.Set("api_key", c.apiKey)

	base := c.baseURL + path
	return base + "?" + params.Encode(), base + "?" + logParams.Encode()
}

// redactError strips the credential from transport errors, which embed the
// full request URL.
func redactError(err error, apiKey string) error {
	var urlErr *url.Error
	if apiKey == "" || !errors.As(err, &urlErr) {
		return err
	}
	if u, perr := url.Parse(urlErr.URL); perr == nil {
		q := u.Query()
		if q.Has("api_key") {
			q.Set("api_key", redacted)
			u.RawQuery = q.Encode()
		}
		return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
	}
	return urlErr.Err
}
