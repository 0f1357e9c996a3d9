// Package whatsapp provides a client for the gowa WhatsApp gateway used
// to deliver operational digests to marina staff.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marinaops_backend/platform/config"
	"marinaops_backend/platform/logger"
	"marinaops_backend/platform/phone"
)

// Client sends text messages through a gowa instance. A nil client (no
// gateway configured) silently drops messages so callers need no guards.
type Client struct {
	baseURL       string
	apiKey        string
	deviceID      string
	defaultRegion string
	http          *http.Client
	log           *logger.Logger
}

type gowaRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewClient creates a WhatsApp client, or nil when no gateway URL is set.
func NewClient(cfg config.WhatsAppConfig, log *logger.Logger) *Client {
	if cfg.GetWhatsAppURL() == "" {
		return nil
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.GetWhatsAppURL(), "/"),
		apiKey:        cfg.GetWhatsAppKey(),
		deviceID:      cfg.GetWhatsAppDeviceID(),
		defaultRegion: cfg.GetDigestDefaultRegion(),
		http:          &http.Client{Timeout: 10 * time.Second},
		log:           log,
	}
}

// SendMessage delivers a text message to a phone number. Numbers are
// normalized to E.164 with the configured default region before sending.
func (c *Client) SendMessage(ctx context.Context, phoneNumber string, message string) error {
	if c == nil {
		return nil
	}

	normalized := strings.TrimPrefix(phone.NormalizeE164(phoneNumber, c.defaultRegion), "+")

	payload := gowaRequest{
		Phone:   normalized,
		Message: message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/send/message", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", formatAuthHeader(c.apiKey))
	}
	if c.deviceID != "" {
		req.Header.Set("X-Device-Id", c.deviceID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("whatsapp sent via gowa", "phone", normalized)
	return nil
}

func formatAuthHeader(apiKey string) string {
	if strings.HasPrefix(strings.ToLower(apiKey), "basic ") {
		return apiKey
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(apiKey))
	return "Basic " + encoded
}
