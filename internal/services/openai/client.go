package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"openrecorder/internal/services"
)

const (
	defaultHTTPTimeout = 120 * time.Second

	// maxUploadBytes is the transcription API's file size ceiling.
	maxUploadBytes = 25 * 1024 * 1024
)

// transcribeExtensions lists the container formats the transcription API
// accepts. Checked before any upload is attempted.
var transcribeExtensions = map[string]struct{}{
	"mp3":  {},
	"m4a":  {},
	"wav":  {},
	"flac": {},
	"ogg":  {},
	"aac":  {},
}

// Config captures the runtime settings required to talk to the API.
type Config struct {
	APIKey          string
	BaseURL         string
	TranscribeModel string
	ChatModel       string
	TimeoutSeconds  int
}

// Client talks to the OpenAI transcription and chat completion endpoints.
// Failures are tagged with the services error taxonomy; no retries are
// performed.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client (useful for tests).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a client from the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:          strings.TrimSpace(cfg.APIKey),
			BaseURL:         strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			TranscribeModel: strings.TrimSpace(cfg.TranscribeModel),
			ChatModel:       strings.TrimSpace(cfg.ChatModel),
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "https://api.openai.com/v1"
	}
	return client
}

// Word is a word-level timestamp from a verbose transcription response.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is the result of transcribing one audio file.
type Transcript struct {
	Text     string  `json:"text"`
	Words    []Word  `json:"words"`
	Duration float64 `json:"duration"`
	Language string  `json:"language"`
}

// Transcribe uploads the audio file at path and returns its transcript.
// Validation (credential, file presence, size, format) happens before any
// network traffic.
func (c *Client) Transcribe(ctx context.Context, path string) (Transcript, error) {
	var empty Transcript
	if c.cfg.APIKey == "" {
		return empty, services.Wrap(services.ErrMissingCredential, "openai", "transcribe", "api key not configured (set OPENAI_API_KEY)", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		return empty, services.Wrap(services.ErrFileNotFound, "openai", "transcribe", path, nil)
	}
	if info.Size() > maxUploadBytes {
		return empty, services.Wrap(services.ErrFileTooLarge, "openai", "transcribe",
			fmt.Sprintf("%s is %d bytes, limit is %d", path, info.Size(), maxUploadBytes), nil)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := transcribeExtensions[ext]; !ok {
		return empty, services.Wrap(services.ErrUnsupportedFormat, "openai", "transcribe",
			fmt.Sprintf("extension %q not supported", ext), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return empty, services.Wrap(services.ErrStorageIO, "openai", "transcribe", "open audio", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return empty, services.Wrap(services.ErrService, "openai", "transcribe", "build request", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return empty, services.Wrap(services.ErrStorageIO, "openai", "transcribe", "read audio", err)
	}
	for _, field := range [][2]string{
		{"model", c.cfg.TranscribeModel},
		{"response_format", "verbose_json"},
		{"timestamp_granularities[]", "word"},
	} {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return empty, services.Wrap(services.ErrService, "openai", "transcribe", "build request", err)
		}
	}
	if err := writer.Close(); err != nil {
		return empty, services.Wrap(services.ErrService, "openai", "transcribe", "build request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/audio/transcriptions", &body)
	if err != nil {
		return empty, services.Wrap(services.ErrService, "openai", "transcribe", "new request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	payload, err := c.send(req, "transcribe")
	if err != nil {
		return empty, err
	}

	var transcript Transcript
	if err := json.Unmarshal(payload, &transcript); err != nil {
		return empty, services.Wrap(services.ErrService, "openai", "transcribe", "decode response", err)
	}
	return transcript, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete issues a single chat completion for prompt and returns the model
// response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", services.Wrap(services.ErrMissingCredential, "openai", "complete", "api key not configured (set OPENAI_API_KEY)", nil)
	}

	payload := chatRequest{
		Model:       c.cfg.ChatModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrService, "openai", "complete", "encode body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrService, "openai", "complete", "new request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.send(req, "complete")
	if err != nil {
		return "", err
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", services.Wrap(services.ErrService, "openai", "complete", "decode response", err)
	}
	if completion.Error != nil {
		return "", services.Wrap(services.ErrService, "openai", "complete", completion.Error.Message, nil)
	}
	if len(completion.Choices) == 0 {
		return "", services.Wrap(services.ErrService, "openai", "complete", "empty choices", nil)
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *Client) send(req *http.Request, operation string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "openai", operation, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "openai", operation, "read body", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		detail := fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return nil, services.Wrap(services.ErrService, "openai", operation, detail, nil)
	}
	return body, nil
}
