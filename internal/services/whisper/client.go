package whisper

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

const defaultHTTPTimeout = 120 * time.Second

// Config describes the inference endpoint client configuration.
type Config struct {
	Endpoint   string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client sends chunk audio to a Hugging Face inference endpoint running a
// Whisper model. One request per chunk, no retries.
type Client struct {
	endpoint *url.URL
	token    string
	http     *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("whisper: endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("whisper: parse endpoint: %w", err)
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("whisper: token is required")
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{endpoint: parsed, token: token, http: client}, nil
}

type inferenceRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters"`
}

type inferenceResponse struct {
	Text  *string `json:"text"`
	Error string  `json:"error"`
}

// Transcribe sends one chunk artifact to the endpoint and returns the
// recognized text. An empty transcript is a valid result (silence). Auth,
// rate-limit, and malformed-payload failures surface as sentinel errors so
// callers can classify them.
func (c *Client) Transcribe(ctx context.Context, path string) (string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("whisper: read chunk: %w", err)
	}

	payload, err := json.Marshal(inferenceRequest{
		Inputs:     base64.StdEncoding.EncodeToString(audio),
		Parameters: map[string]any{},
	})
	if err != nil {
		return "", fmt.Errorf("whisper: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("whisper: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("whisper: read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("%w (status %d)", ErrAuthFailed, resp.StatusCode)
	case http.StatusTooManyRequests:
		return "", ErrRateLimited
	default:
		return "", fmt.Errorf("whisper: endpoint returned status %d: %s", resp.StatusCode, summarizeBody(body))
	}

	var decoded inferenceResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedResponse, summarizeBody(body))
	}
	if decoded.Error != "" {
		return "", fmt.Errorf("whisper: endpoint error: %s", decoded.Error)
	}
	if decoded.Text == nil {
		return "", fmt.Errorf("%w: missing text field", ErrMalformedResponse)
	}
	return strings.TrimSpace(*decoded.Text), nil
}

func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "<empty body>"
	}
	if len(trimmed) > 200 {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := 200
		for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
			cut--
		}
		trimmed = trimmed[:cut] + "..."
	}
	return trimmed
}
