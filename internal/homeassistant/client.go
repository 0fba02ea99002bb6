package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/teemow/meetpresence/internal/config"
	"github.com/teemow/meetpresence/internal/logging"
)

const userAgent = "meetpresence/1.0"

// RequestTimeout bounds every request to Home Assistant. Service calls
// answer in well under a second; a stalled connection must not block the
// delivery path, which runs synchronously in the watch loop.
const RequestTimeout = 10 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: RequestTimeout}
}

// Deliverer pushes a meeting presence state to Home Assistant. It performs
// exactly one delivery per call: retries and connectivity gating are
// composed around it, never inside it.
type Deliverer interface {
	Deliver(ctx context.Context, inMeeting bool) error
}

// NewDeliverer selects the wire strategy for the given configuration.
// The config is expected to have passed validation already.
func NewDeliverer(cfg config.Config) (Deliverer, error) {
	switch cfg.Method {
	case config.MethodAPI:
		return &apiDeliverer{
			host:     strings.TrimRight(cfg.Host, "/"),
			token:    cfg.Token,
			entityID: cfg.EntityID,
			client:   newHTTPClient(),
		}, nil
	case config.MethodWebhook:
		return &webhookDeliverer{
			url:    cfg.WebhookURL,
			client: newHTTPClient(),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported delivery method: %q", cfg.Method)
	}
}

// apiDeliverer drives an entity through the Home Assistant REST API.
//
// It first invokes the semantic input_boolean turn_on/turn_off service,
// which only works for boolean-like entities, and falls back to the
// universal direct state write when the service call is rejected.
type apiDeliverer struct {
	host     string
	token    string
	entityID string
	client   *http.Client
}

func (d *apiDeliverer) Deliver(ctx context.Context, inMeeting bool) error {
	service := "turn_off"
	if inMeeting {
		service = "turn_on"
	}

	url := fmt.Sprintf("%s/api/services/input_boolean.%s", d.host, service)
	err := d.post(ctx, "service_call", url, serviceCallBody{EntityID: d.entityID})
	if err == nil {
		return nil
	}

	slog.Debug("service call rejected, falling back to state set",
		logging.Operation("deliver"), logging.Err(err))

	url = fmt.Sprintf("%s/api/states/%s", d.host, d.entityID)
	if err := d.post(ctx, "state_set", url, stateSetBody{State: stateWord(inMeeting)}); err != nil {
		return err
	}
	return nil
}

func (d *apiDeliverer) post(ctx context.Context, op, url string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s body: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", op, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

// webhookDeliverer posts the presence value to a webhook trigger. Webhook
// ids are secrets in their own right, so no auth header is sent.
type webhookDeliverer struct {
	url    string
	client *http.Client
}

func (d *webhookDeliverer) Deliver(ctx context.Context, inMeeting bool) error {
	payload, err := json.Marshal(webhookBody{Value: stateWord(inMeeting)})
	if err != nil {
		return fmt.Errorf("failed to encode webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: "webhook", StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}
