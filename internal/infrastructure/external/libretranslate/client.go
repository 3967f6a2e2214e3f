package libretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout for HTTP requests
const DefaultTimeout = 10 * time.Second

// Client calls a LibreTranslate instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new LibreTranslate client. The API key is optional
// (self-hosted instances usually run without one).
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name returns the provider tag
func (c *Client) Name() string {
	return "libretranslate"
}

// Translate calls POST /translate with a JSON body and reads the flat
// translatedText response.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	payload := map[string]string{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	}
	if c.apiKey != "" {
		payload["api_key"] = c.apiKey
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal libretranslate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to build libretranslate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("libretranslate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read libretranslate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("libretranslate returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", fmt.Errorf("libretranslate returned status %d", resp.StatusCode)
	}

	var parsed struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse libretranslate response: %w", err)
	}

	if parsed.TranslatedText == "" {
		return "", fmt.Errorf("libretranslate returned an empty translation")
	}

	return parsed.TranslatedText, nil
}
