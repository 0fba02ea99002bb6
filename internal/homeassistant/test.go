package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/teemow/meetpresence/internal/config"
)

// TestConnection performs a single diagnostic request for the given
// configuration and maps the response to a human-readable result.
//
// Unlike the automatic delivery path it uses neither the retry policy nor
// the connectivity probe: the point is immediate, unambiguous feedback on
// exactly one attempt.
func TestConnection(ctx context.Context, cfg config.Config) TestResult {
	switch cfg.Method {
	case config.MethodAPI:
		return testAPI(ctx, cfg)
	case config.MethodWebhook:
		return testWebhook(ctx, cfg)
	default:
		return TestResult{Success: false, Message: fmt.Sprintf("unsupported method %q", cfg.Method)}
	}
}

func testAPI(ctx context.Context, cfg config.Config) TestResult {
	url := fmt.Sprintf("%s/api/states/%s", strings.TrimRight(cfg.Host, "/"), cfg.EntityID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return TestResult{Success: false, Message: fmt.Sprintf("invalid host: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+cfg.Token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := newHTTPClient().Do(req)
	if err != nil {
		return TestResult{Success: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return TestResult{Success: true, Message: "connection ok, entity found"}
	case http.StatusUnauthorized:
		return TestResult{Success: false, Message: "authentication failed: check the access token"}
	case http.StatusNotFound:
		return TestResult{Success: false, Message: "entity not found: check the entity id and host"}
	default:
		return TestResult{Success: false, Message: fmt.Sprintf("unexpected status %d from Home Assistant", resp.StatusCode)}
	}
}

func testWebhook(ctx context.Context, cfg config.Config) TestResult {
	payload, _ := json.Marshal(webhookBody{Value: "on"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return TestResult{Success: false, Message: fmt.Sprintf("invalid webhook url: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := newHTTPClient().Do(req)
	if err != nil {
		return TestResult{Success: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusOK {
		return TestResult{Success: true, Message: "webhook accepted the test value"}
	}
	return TestResult{Success: false, Message: fmt.Sprintf("webhook returned status %d", resp.StatusCode)}
}
