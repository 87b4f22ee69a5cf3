package ai

import (
	"context"
	"strings"

	"github.com/billora/billora/internal/config"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/logger"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type geminiExtractor struct {
	client *genai.Client
	model  string
	logger *logger.Logger
}

// NewGeminiExtractor creates an Extractor backed by the Gemini API
func NewGeminiExtractor(ctx context.Context, cfg *config.Configuration, logger *logger.Logger) (Extractor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.AI.APIKey))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to initialize AI client").
			Mark(ierr.ErrSystem)
	}
	return &geminiExtractor{
		client: client,
		model:  cfg.AI.Model,
		logger: logger,
	}, nil
}

func (g *geminiExtractor) CompleteJSON(ctx context.Context, systemPrompt, userText string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.SetTemperature(0.3)

	resp, err := model.GenerateContent(ctx, genai.Text(userText))
	if err != nil {
		g.logger.Errorw("ai completion failed", "error", err)
		return "", ierr.WithError(err).
			WithHint("The AI provider is unavailable, please retry").
			Mark(ierr.ErrHTTPClient)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ierr.NewError("empty ai response").
			WithHint("The AI provider returned no content, please retry").
			Mark(ierr.ErrHTTPClient)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ierr.NewError("empty ai response").
			WithHint("The AI provider returned no content, please retry").
			Mark(ierr.ErrHTTPClient)
	}
	return out, nil
}
