package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const analysisPrompt = "Analyze this PUBG Mobile match result screenshot. " +
	"Extract the team placement (rank like #1, #2, etc), total kills, and the per-player results. " +
	"Return JSON with {placement: number, kills: number, players: [{name: string, kills: number, damage: number}]}. " +
	"If you cannot find a value, return null for that field."

type VisionClientConfig struct {
	BaseURL string // OpenAI-compatible API root, e.g. https://ai.gateway.example.dev/v1
	APIKey  string
	Model   string
	Timeout time.Duration
}

// visionClient calls an OpenAI-compatible chat-completions endpoint with the
// screenshot URL attached as an image part and parses the model's JSON reply.
type visionClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewVisionClient(cfg VisionClientConfig) (ScreenshotAnalyzer, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" || cfg.Model == "" {
		return nil, errors.New("invalid vision client configuration: base URL, API key and model are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &visionClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
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

func (c *visionClient) AnalyzeScreenshot(ctx context.Context, screenshotURL string) (*MatchAnalysis, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: analysisPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: screenshotURL}},
			},
		}},
		Temperature: 0.1,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("analysis service error: %s", chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}
	if len(chatResp.Choices) == 0 {
		return nil, errors.New("analysis service returned no choices")
	}

	content := extractJSON(chatResp.Choices[0].Message.Content)

	var result MatchAnalysis
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse extracted match data: %w", err)
	}
	return &result, nil
}

// extractJSON tolerates models that wrap their JSON answer in a markdown
// code fence.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	if content == "" {
		return "{}"
	}
	return content
}
