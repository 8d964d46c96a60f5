// Package client is the HTTP client for the burn stats API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/types"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the API served at baseURL.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("request failed with status %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	var status types.HealthStatus
	if err := c.get(ctx, "/api/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Tokenomics(ctx context.Context) (*types.TokenomicsView, error) {
	var view types.TokenomicsView
	if err := c.get(ctx, "/api/tokenomics", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) BurnStats(ctx context.Context) (*types.BurnStats, error) {
	var stats types.BurnStats
	if err := c.get(ctx, "/api/burns", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) BurnHistory(ctx context.Context) ([]*types.BurnHistoryEntry, error) {
	var history []*types.BurnHistoryEntry
	if err := c.get(ctx, "/api/burns/history", nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *Client) BurnWalletTokens(ctx context.Context) ([]*types.AccountToken, error) {
	var tokens []*types.AccountToken
	if err := c.get(ctx, "/api/burns/wallet", nil, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// BurnArchive lists archived burns, newest first, and the number of burns in
// the archive. limit <= 0 uses the server default.
func (c *Client) BurnArchive(ctx context.Context, limit int) ([]*types.BurnRecord, int64, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var burns []*types.BurnRecord
	header, err := c.do(ctx, "/api/burns/archive", q, &burns)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(burns))
	if v := header.Get("X-Total-Count"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			total = n
		}
	}
	return burns, total, nil
}

func (c *Client) Roadmap(ctx context.Context) (*types.RoadmapProgress, error) {
	var progress types.RoadmapProgress
	if err := c.get(ctx, "/api/roadmap/progress", nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst interface{}) error {
	_, err := c.do(ctx, path, q, dst)
	return err
}

func (c *Client) do(ctx context.Context, path string, q url.Values, dst interface{}) (http.Header, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseErrorResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	c.logger.Debug("request done", zap.String("path", path), zap.Int("status", resp.StatusCode))
	return resp.Header, nil
}

func (c *Client) parseErrorResponse(resp *http.Response) error {
	var errResp struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}

	body, _ := ioutil.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error, Details: errResp.Details}
}
