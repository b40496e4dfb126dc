// Package ratefeed pulls published BCV/Binance exchange rates from an
// upstream feed. The feed is a collaborator, not part of the valuation core:
// it only produces the rates record the conversion policy reads.
package ratefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Rates is a snapshot of published rates as served by the upstream feed.
type Rates struct {
	UsdBCV         float64
	EurBCV         float64
	UsdBinanceBuy  float64
	UsdBinanceSell float64
	Timestamp      time.Time
}

// feedResponse mirrors the upstream JSON envelope.
type feedResponse struct {
	Success bool `json:"success"`
	Data    struct {
		UsdBCV         float64 `json:"usd_bcv"`
		EurBCV         float64 `json:"eur_bcv"`
		UsdBinanceBuy  float64 `json:"usd_binance_buy"`
		UsdBinanceSell float64 `json:"usd_binance_sell"`
		Timestamp      string  `json:"timestamp"`
	} `json:"data"`
	Source string `json:"source"`
}

// Client fetches rates over HTTP from a configured feed URL.
type Client struct {
	httpClient *http.Client
	feedURL    string
}

// NewClient creates a rates feed client. A nil httpClient gets a default
// with a 10 second timeout.
func NewClient(httpClient *http.Client, feedURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpClient: httpClient, feedURL: feedURL}
}

// Fetch retrieves the current published rates from the feed.
func (c *Client) Fetch(ctx context.Context) (Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return Rates{}, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Rates{}, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Rates{}, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var payload feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Rates{}, fmt.Errorf("failed to decode feed response: %w", err)
	}
	if !payload.Success {
		return Rates{}, fmt.Errorf("feed reported failure (source %q)", payload.Source)
	}
	if payload.Data.UsdBCV <= 0 {
		return Rates{}, fmt.Errorf("feed returned non-positive usd_bcv rate %v", payload.Data.UsdBCV)
	}

	rates := Rates{
		UsdBCV:         payload.Data.UsdBCV,
		EurBCV:         payload.Data.EurBCV,
		UsdBinanceBuy:  payload.Data.UsdBinanceBuy,
		UsdBinanceSell: payload.Data.UsdBinanceSell,
		Timestamp:      time.Now(),
	}
	if ts, err := time.Parse(time.RFC3339, payload.Data.Timestamp); err == nil {
		rates.Timestamp = ts
	}
	return rates, nil
}
