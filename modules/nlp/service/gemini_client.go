package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient is the single LLM entry point shared by the classifier, the
// extractors and the Q&A chain.
type GeminiClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, *errors.AppError)
}

type geminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiClient(cfg config.GeminiConfig) GeminiClient {
	return &geminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: geminiAPIBase,
		client:  &http.Client{Timeout: constants.DefaultTimeout},
	}
}

type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *geminiClient) GenerateContent(ctx context.Context, prompt string) (string, *errors.AppError) {
	if g.apiKey == "" {
		return "", errors.NewAppError(errors.ErrInternalServer, "Gemini API key not configured", nil)
	}

	var payload generateRequest
	payload.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	payload.Contents[0].Parts = []struct {
		Text string `json:"text"`
	}{{Text: prompt}}
	payload.GenerationConfig.Temperature = 0

	body, _ := json.Marshal(payload)

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(body))
	if err != nil {
		logger.Error("GeminiClient:GenerateContent:NewRequest:Error", "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error("GeminiClient:GenerateContent:DoRequest:Error", "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to call Gemini", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("GeminiClient:GenerateContent:APIError", "status", resp.StatusCode, "body", string(respBody))
		return "", errors.NewAppError(errors.ErrInternalServer, fmt.Sprintf("Gemini API error: %d", resp.StatusCode), nil)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Error("GeminiClient:GenerateContent:Decode:Error", "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to parse Gemini response", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.NewAppError(errors.ErrParseFailure, "empty Gemini response", nil)
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

// StripCodeFence removes a surrounding markdown code block from a model
// response. Gemini occasionally wraps JSON output in ```json fences despite
// being told not to.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	parts := strings.SplitN(text, "```", 3)
	if len(parts) < 2 {
		return text
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}
