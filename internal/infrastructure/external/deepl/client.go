package deepl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout for HTTP requests
const DefaultTimeout = 10 * time.Second

// Client calls the DeepL v2 translation API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new DeepL client
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name returns the provider tag
func (c *Client) Name() string {
	return "deepl"
}

// Translate calls POST /v2/translate with form-encoded parameters. DeepL
// wants upper-cased language codes and returns a translations array.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", strings.ToUpper(source))
	form.Set("target_lang", strings.ToUpper(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build deepl request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepl request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read deepl response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("deepl returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", fmt.Errorf("deepl returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Translations []struct {
			DetectedSourceLanguage string `json:"detected_source_language"`
			Text                   string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse deepl response: %w", err)
	}

	if len(parsed.Translations) == 0 || parsed.Translations[0].Text == "" {
		return "", fmt.Errorf("deepl returned an empty translation")
	}

	return parsed.Translations[0].Text, nil
}
