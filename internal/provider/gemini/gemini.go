// Package gemini implements provider.Generator on top of the Google
// Gemini API with native function calling.
package gemini

import (
	"context"
	"sync"

	"github.com/Cyclone1070/forge/internal/provider"
	"github.com/Cyclone1070/forge/internal/tool"
)

// Generator implements provider.Generator for Google Gemini.
type Generator struct {
	client    GeminiClient
	modelName string
	mu        sync.RWMutex
	tools     []tool.Declaration
}

// New creates a Generator with the specified client and model.
func New(client GeminiClient, modelName string) *Generator {
	return &Generator{
		client:    client,
		modelName: modelName,
	}
}

// DefineTools registers tool declarations for native function calling.
func (g *Generator) DefineTools(decls []tool.Declaration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tools = decls
}

// Generate sends a request to the Gemini API and returns the response.
func (g *Generator) Generate(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error) {
	g.mu.RLock()
	model := g.modelName
	tools := g.tools
	g.mu.RUnlock()

	contents := toGeminiContents(prompt, history)

	config := toGeminiConfig()
	if len(tools) > 0 {
		config.Tools = toGeminiTools(tools)
	}

	resp, err := g.client.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return fromGeminiResponse(resp)
}
