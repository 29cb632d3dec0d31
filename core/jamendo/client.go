package jamendo

import (
	"net/http"
	"time"

	"AuraFM/config"
)

// Client talks to the Jamendo v3.0 API. The client id is injected from
// configuration; there is no package-level default credential.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
}

// NewClient creates a new API client from the application config.
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.CatalogTimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL:  cfg.JamendoAPIURL,
		clientID: cfg.JamendoClientID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTimeout overrides the request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}
