package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"yacht-tracker/internal/domain/device"
	"yacht-tracker/internal/logger"

	"go.uber.org/zap"
)

const (
	trackingDataPath = "/api/tracking/data"
	wristbandsPath   = "/api/tracking/wristbands"
)

// Client talks to the onboard tracking API.
type Client struct {
	baseURL string
	client  *http.Client
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("telemetry: base url is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// FetchSnapshot returns the raw device set. Every failure wraps
// device.ErrFetchFailed so callers can keep their previous snapshot.
func (c *Client) FetchSnapshot(ctx context.Context) (*device.RawSnapshot, error) {
	var snap device.RawSnapshot
	if err := c.getEnvelope(ctx, trackingDataPath, &snap); err != nil {
		return nil, err
	}
	if snap.Devices == nil {
		snap.Devices = []device.RawDevice{}
	}
	logger.Debug("Fetched tracking snapshot", zap.Int("devices", len(snap.Devices)))
	return &snap, nil
}

// ListWristbands returns the wristband ids known to the tracking API.
func (c *Client) ListWristbands(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.getEnvelope(ctx, wristbandsPath, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	logger.Debug("Fetched wristband list", zap.Int("wristbands", len(ids)))
	return ids, nil
}

func (c *Client) getEnvelope(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", device.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", device.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned http %d", device.ErrFetchFailed, path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decode %s: %v", device.ErrFetchFailed, path, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = "unsuccessful response"
		}
		return fmt.Errorf("%w: %s: %s", device.ErrFetchFailed, path, msg)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode %s data: %v", device.ErrFetchFailed, path, err)
	}
	return nil
}
