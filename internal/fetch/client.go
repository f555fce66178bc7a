package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quotevault/internal/query"
)

// DefaultMaxBodyBytes caps how much of a response body is read
const DefaultMaxBodyBytes = 4 << 20

// Fetcher performs one search request
type Fetcher interface {
	Fetch(ctx context.Context, req query.Request) (*Response, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, req query.Request) (*Response, error)

func (f FetcherFunc) Fetch(ctx context.Context, req query.Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPFetcher talks to the remote search endpoint
type HTTPFetcher struct {
	endpoint     string
	client       *http.Client
	logger       *zap.Logger
	MaxBodyBytes int64
	UserAgent    string
}

// NewHTTPFetcher creates a fetcher for endpoint (scheme://host[:port]).
// A nil client means http.DefaultClient.
func NewHTTPFetcher(endpoint string, client *http.Client, logger *zap.Logger) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPFetcher{
		endpoint:     strings.TrimSuffix(endpoint, "/"),
		client:       client,
		logger:       logger.Named("fetch"),
		MaxBodyBytes: DefaultMaxBodyBytes,
		UserAgent:    "quotevault",
	}
}

// Endpoint returns the configured base URL
func (f *HTTPFetcher) Endpoint() string {
	return f.endpoint
}

// Fetch issues GET /api/search for req
func (f *HTTPFetcher) Fetch(ctx context.Context, req query.Request) (*Response, error) {
	target, err := req.URL(f.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
	}

	requestID := uuid.NewString()
	body, err := f.get(ctx, target, requestID)
	if err != nil {
		return nil, err
	}

	resp, err := DecodeResponse(body)
	if err != nil {
		f.logger.Warn("invalid search response",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// healthResponse is the body of GET /health
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health checks that the search service is up
func (f *HTTPFetcher) Health(ctx context.Context) (string, error) {
	body, err := f.get(ctx, f.endpoint+"/health", uuid.NewString())
	if err != nil {
		return "", err
	}
	var h healthResponse
	if err := sonic.Unmarshal(body, &h); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if h.Status != "ok" {
		return "", fmt.Errorf("service reported status %q", h.Status)
	}
	return h.Message, nil
}

func (f *HTTPFetcher) get(ctx context.Context, target, requestID string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", f.UserAgent)
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := f.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			f.logger.Debug("request cancelled", zap.String("request_id", requestID))
		} else {
			f.logger.Warn("request failed", zap.String("request_id", requestID), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	f.logger.Debug("response received",
		zap.String("request_id", requestID),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	limit := f.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrNetworkUnavailable, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedResponse, limit)
	}
	return body, nil
}
