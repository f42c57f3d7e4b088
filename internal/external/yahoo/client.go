package yahoo

import (
	"github.com/wonny/chartbook/pkg/httputil"
	"github.com/wonny/chartbook/pkg/logger"
)

// Client handles communication with the Yahoo Finance chart API.
// SSOT: Yahoo Finance calls go through this client only.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// WithBaseURL overrides the API host. Tests point this at a local server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}
