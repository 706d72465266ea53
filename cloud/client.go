package cloud

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
)

var (
	ErrDisconnected = errors.New("farm service returned no data")
	ErrBadStatus    = errors.New("farm service returned non-OK status")
)

// Client talks to the external farm data service.
type Client interface {
	GetLatestSnapshot() (RawSnapshot, error)
	GetHistory(hours, limit int) ([]RawSnapshot, error)
	SendControlCommand(command string) (*ControlResult, error)
}

type ClientConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type client struct {
	cfg        ClientConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg ClientConfig) Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.Logger("cloud"),
	}
}

func (c *client) GetLatestSnapshot() (RawSnapshot, error) {
	body, err := c.get("/api/sensors/latest")
	if err != nil {
		return nil, err
	}
	var env snapshotEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error().Msgf("unmarshal latest snapshot error: %s", err)
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, ErrDisconnected
	}
	var raw RawSnapshot
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		c.logger.Error().Msgf("unmarshal snapshot payload error: %s", err)
		return nil, err
	}
	return raw, nil
}

func (c *client) GetHistory(hours, limit int) ([]RawSnapshot, error) {
	q := url.Values{}
	q.Set("hours", fmt.Sprintf("%d", hours))
	q.Set("limit", fmt.Sprintf("%d", limit))
	body, err := c.get("/api/sensors/history?" + q.Encode())
	if err != nil {
		return nil, err
	}
	var env historyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error().Msgf("unmarshal history error: %s", err)
		return nil, err
	}
	return env.Data, nil
}

func (c *client) SendControlCommand(command string) (*ControlResult, error) {
	payload, err := json.Marshal(controlRequest{Command: command})
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Post(c.cfg.BaseURL+"/api/control", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Int("status", resp.StatusCode).Msgf("control command rejected: %s", body)
		return nil, ErrBadStatus
	}
	var result ControlResult
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error().Msgf("unmarshal control result error: %s", err)
		return nil, err
	}
	return &result, nil
}

func (c *client) get(path string) ([]byte, error) {
	resp, err := c.httpClient.Get(c.cfg.BaseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrBadStatus
	}
	return io.ReadAll(resp.Body)
}
