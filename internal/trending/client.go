package trending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// ErrNotFound is returned when upstream has no trending data for a title.
var ErrNotFound = errors.New("trending: not found")

// Result is the trending information shown next to a movie's own rating.
type Result struct {
	Rating      string
	Source      string
	LastUpdated time.Time
}

// Client defines the contract for querying the upstream trending service.
type Client interface {
	Fetch(ctx context.Context, title string) (*Result, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  *log.Logger
}

// NewHTTPClient constructs a new HTTP-backed trending client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *log.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse trending url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("parse trending url: %q is not absolute", baseURL)
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// Fetch retrieves the trending rating for a title.
func (c *HTTPClient) Fetch(ctx context.Context, title string) (*Result, error) {
	rel := &url.URL{Path: c.baseURL.Path + "/trending"}
	q := rel.Query()
	q.Set("title", title)
	rel.RawQuery = q.Encode()
	endpoint := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload apiResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode trending response: %w", err)
		}
		return convertToResult(payload)
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		c.logger.Warn("trending: unexpected status", "status", resp.StatusCode, "title", title)
		return nil, fmt.Errorf("trending: upstream returned %d", resp.StatusCode)
	}
}

type apiResponse struct {
	Title       string          `json:"title"`
	Rating      json.RawMessage `json:"rating"`
	Source      *string         `json:"source"`
	LastUpdated *time.Time      `json:"lastUpdated"`
}

// convertToResult accepts the rating as either a JSON number or a numeric
// string and normalises it to one fractional digit.
func convertToResult(payload apiResponse) (*Result, error) {
	raw := strings.TrimSpace(string(payload.Rating))
	if raw == "" || raw == "null" {
		return nil, ErrNotFound
	}
	var text string
	if err := json.Unmarshal(payload.Rating, &text); err == nil {
		raw = text
	}
	rating, err := domain.NormalizeRating(raw)
	if err != nil {
		return nil, fmt.Errorf("trending: invalid rating %q", raw)
	}

	lastUpdated := time.Now().UTC()
	if payload.LastUpdated != nil {
		lastUpdated = payload.LastUpdated.UTC()
	}
	source := "TrendingAPI"
	if payload.Source != nil && *payload.Source != "" {
		source = *payload.Source
	}

	return &Result{
		Rating:      rating,
		Source:      source,
		LastUpdated: lastUpdated,
	}, nil
}
