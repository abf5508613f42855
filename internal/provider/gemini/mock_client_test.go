package gemini

import (
	"context"

	"google.golang.org/genai"
)

// MockGeminiClient is a mock implementation of GeminiClient for testing.
type MockGeminiClient struct {
	GenerateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	// Captured arguments from the last call.
	LastModel    string
	LastContents []*genai.Content
	LastConfig   *genai.GenerateContentConfig
}

func (m *MockGeminiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.LastModel = model
	m.LastContents = contents
	m.LastConfig = config

	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, model, contents, config)
	}
	return &genai.GenerateContentResponse{}, nil
}
