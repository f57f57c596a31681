package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/engagement-dashboard/internal/models"
)

const maxResponseBytes = 32 << 20

// MessageAPIRepository reads messages and classification results from the engagement API.
type MessageAPIRepository struct {
	baseURL string
	client  *http.Client
}

// NewMessageAPIRepository constructs a repository against baseURL. Per-call deadlines
// come from the caller's context; the client timeout is only a backstop.
func NewMessageAPIRepository(baseURL string, timeout time.Duration) *MessageAPIRepository {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &MessageAPIRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout, Transport: transport},
	}
}

// WithHTTPClient swaps the underlying client, mostly for tests.
func (r *MessageAPIRepository) WithHTTPClient(client *http.Client) *MessageAPIRepository {
	if client != nil {
		r.client = client
	}
	return r
}

// BaseURL returns the configured API root.
func (r *MessageAPIRepository) BaseURL() string {
	return r.baseURL
}

// DateRange fetches the earliest and latest message dates.
func (r *MessageAPIRepository) DateRange(ctx context.Context) (*models.DateRange, error) {
	var out models.DateRange
	if err := r.do(ctx, http.MethodGet, "/messages/date-range", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchMessages runs a message search. query is the pre-built term string without '?'.
func (r *MessageAPIRepository) SearchMessages(ctx context.Context, query string) ([]models.Message, error) {
	var out []models.Message
	if err := r.do(ctx, http.MethodGet, "/messages?"+query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("message search returned null body")
	}
	return out, nil
}

// Classify asks the rules service to check a single message.
func (r *MessageAPIRepository) Classify(ctx context.Context, messageID int64) (*models.ClassificationResult, error) {
	var out models.ClassificationResult
	path := "/classify/" + strconv.FormatInt(messageID, 10)
	if err := r.do(ctx, http.MethodPost, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Info calls the API root, used as a readiness probe.
func (r *MessageAPIRepository) Info(ctx context.Context) (*models.BackendInfo, error) {
	var out models.BackendInfo
	if err := r.do(ctx, http.MethodGet, "/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MessageAPIRepository) do(ctx context.Context, method, path string, dest interface{}) error {
	if r == nil || r.baseURL == "" {
		return fmt.Errorf("message API base URL not configured")
	}
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// StatusError reports a non-2xx response from the message API.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
