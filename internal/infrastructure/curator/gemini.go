package curator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appcurator "github.com/komorebi/backend/internal/application/curator"
	"github.com/komorebi/backend/internal/infrastructure/config"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com"
	defaultGeminiModel = "gemini-2.5-flash"
	noteTemperature    = 0.7
)

// notePrompt frames the model as the shop's curator. Kept deliberately
// short; the model does the rest.
const notePrompt = `You are a curator for a high-end, minimalist lifestyle shop called "Komorebi".
Brand philosophy: objects chosen slowly, for a quieter life.

Write a short, poetic, and atmospheric product description for the following item.
Focus on the sensory experience, the material, and how it represents a conscious choice for a better life.
Do not be salesy. Be contemplative and calm. Maximum 3 sentences.

Product Name: %s
Material: %s
Origin: %s
Description: %s`

// GeminiGenerator implements appcurator.NoteGenerator against the
// Gemini REST API
type GeminiGenerator struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiGenerator creates a generator from configuration
func NewGeminiGenerator(cfg config.CuratorConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GeminiGenerator{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateNote asks the model for a curator note
func (g *GeminiGenerator) GenerateNote(ctx context.Context, req appcurator.NoteRequest) (string, error) {
	prompt := fmt.Sprintf(notePrompt, req.Name, req.Material, req.Origin, req.Description)

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{Temperature: noteTemperature},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("gemini: failed to decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini: API error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}

	note := firstText(parsed)
	if note == "" {
		return "", fmt.Errorf("gemini: response contained no text")
	}
	return note, nil
}

func firstText(resp geminiResponse) string {
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text
			}
		}
	}
	return ""
}

var _ appcurator.NoteGenerator = (*GeminiGenerator)(nil)
