package tabs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DevToolsClient queries open tabs through the Chrome DevTools HTTP
// endpoint. The browser must be started with --remote-debugging-port.
type DevToolsClient struct {
	baseURL string
	client  *http.Client
}

// NewDevToolsClient creates a client for the given DevTools base URL,
// e.g. "http://localhost:9222".
func NewDevToolsClient(baseURL string) *DevToolsClient {
	return &DevToolsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// ListTabs returns all open browser targets.
func (c *DevToolsClient) ListTabs(ctx context.Context) ([]Tab, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json/list", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tab list request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query devtools endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("devtools endpoint returned status %d", resp.StatusCode)
	}

	var tabs []Tab
	if err := json.NewDecoder(resp.Body).Decode(&tabs); err != nil {
		return nil, fmt.Errorf("failed to decode tab list: %w", err)
	}

	return tabs, nil
}

// InMeeting reports whether any open page tab is inside a Meet call.
// Any matching tab counts; there is no per-tab bookkeeping.
func (c *DevToolsClient) InMeeting(ctx context.Context) (bool, error) {
	tabs, err := c.ListTabs(ctx)
	if err != nil {
		return false, err
	}

	for _, tab := range tabs {
		if tab.Type != "" && tab.Type != "page" {
			continue
		}
		if IsMeetCall(tab.URL) {
			return true, nil
		}
	}
	return false, nil
}
