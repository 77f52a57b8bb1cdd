package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultFonnteBaseURL = "https://api.fonnte.com"

var ErrNotConfigured = errors.New("whatsapp forwarding is not configured")

// Forwarder delivers a text message to the number in cfg.
type Forwarder interface {
	Send(ctx context.Context, cfg Config, message string) error
}

type FonnteClient struct {
	client *resty.Client
}

var _ Forwarder = &FonnteClient{}

func NewFonnteClient(baseURL string) *FonnteClient {
	if baseURL == "" {
		baseURL = DefaultFonnteBaseURL
	}
	return &FonnteClient{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(30 * time.Second),
	}
}

type fonnteTarget struct {
	Target  string `json:"target"`
	Message string `json:"message"`
	Device  string `json:"device"`
	Delay   string `json:"delay"`
}

type fonnteResponse struct {
	Status bool   `json:"status"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// Send posts one message through the Fonnte /send endpoint. Only
// {"status": true} counts as delivered.
func (f *FonnteClient) Send(ctx context.Context, cfg Config, message string) error {
	if cfg.PhoneNumber == "" || cfg.APIKey == "" {
		return ErrNotConfigured
	}

	data, err := json.Marshal([]fonnteTarget{{
		Target:  cfg.target(),
		Message: message,
		Device:  cfg.DeviceToken,
		Delay:   "0",
	}})
	if err != nil {
		return fmt.Errorf("marshal fonnte payload: %w", err)
	}

	var result fonnteResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Authorization", cfg.APIKey).
		SetFormData(map[string]string{
			"data":     string(data),
			"sequence": "true",
		}).
		SetResult(&result).
		ForceContentType("application/json").
		Post("/send")
	if err != nil {
		return fmt.Errorf("fonnte request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("fonnte error: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if !result.Status {
		reason := result.Reason
		if reason == "" {
			reason = result.Detail
		}
		return fmt.Errorf("fonnte rejected message: %s", reason)
	}

	return nil
}

// TestConnection sends a short probe message to the configured number. The
// enabled toggle is ignored: a probe always needs a number and a key.
func TestConnection(ctx context.Context, fwd Forwarder, cfg Config) error {
	cfg.Enabled = true
	if err := cfg.Validate(); err != nil {
		return err
	}
	return fwd.Send(ctx, cfg, TestMessage)
}
