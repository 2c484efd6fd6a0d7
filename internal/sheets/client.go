package sheets

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nconklindev/portail/internal/table"
)

const DefaultBaseURL = "https://sheets.googleapis.com"

// Client reads ranges through the Sheets v4 values endpoint with an API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Values fetches rng (e.g. "Data!A1:K") of a spreadsheet.
func (c *Client) Values(ctx context.Context, spreadsheetID, rng string) (table.RawTable, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: empty spreadsheet id for range %s", rng)
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(rng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// Kept out of the URL so transport errors never carry the key.
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rng, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := apiError(body)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("fetch %s: status %d: %s", rng, resp.StatusCode, msg)
	}

	raw, err := ParseValues(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rng, err)
	}

	log.Printf("[sheets] %s: %d rows in %s", rng, len(raw), time.Since(start).Round(time.Millisecond))
	return raw, nil
}
