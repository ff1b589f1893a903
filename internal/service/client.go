package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/timemedia/adlibrary/internal/model"
	"github.com/timemedia/adlibrary/internal/query"
)

const clientTimeout = 10 * time.Second

// Client talks to a remote ad library read endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

// adsResponse covers both the success and error body shapes: the endpoint
// may carry an error key even alongside a 200 status, and clients must
// treat that as a failure.
type adsResponse struct {
	Data     []model.Ad `json:"data"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Error    string     `json:"error"`
}

// QueryAds executes a query remotely. The server applies the same
// filter/sort/paginate stages as the local engine. There is no automatic
// retry: callers re-trigger by issuing a new cycle.
func (c *Client) QueryAds(ctx context.Context, st query.State) (*query.Result, error) {
	url := fmt.Sprintf("%s/api/ads?%s", c.baseURL, query.EncodeQuery(st))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query ads: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ads response: %w", err)
	}

	var decoded adsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to parse ads response: %w", err)
	}

	if decoded.Error != "" {
		return nil, fmt.Errorf("ads endpoint: %s", decoded.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if decoded.Data == nil {
		decoded.Data = []model.Ad{}
	}
	return &query.Result{
		Data:     decoded.Data,
		Total:    decoded.Total,
		Page:     decoded.Page,
		PageSize: decoded.PageSize,
	}, nil
}
