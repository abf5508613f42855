package gemini

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/forge/internal/provider"
	"github.com/Cyclone1070/forge/internal/tool"
	"google.golang.org/genai"
)

// toGeminiContents converts a prompt and history to Gemini Content format.
func toGeminiContents(prompt string, history []provider.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, msg := range history {
		content := messageToGeminiContent(msg)
		if content != nil {
			contents = append(contents, content)
		}
	}

	if prompt != "" {
		contents = append(contents, &genai.Content{
			Role: "user",
			Parts: []*genai.Part{
				genai.NewPartFromText(prompt),
			},
		})
	}

	return contents
}

// messageToGeminiContent converts a single message to Gemini Content format.
func messageToGeminiContent(msg provider.Message) *genai.Content {
	role := "user"
	if msg.Role == provider.RoleAssistant {
		role = "model"
	}

	parts := make([]*genai.Part, 0)

	if msg.Content != "" {
		parts = append(parts, genai.NewPartFromText(msg.Content))
	}

	// Tool calls appear on assistant messages.
	for _, call := range msg.ToolCalls {
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: call.Tool,
				Args: call.Args,
			},
		})
	}

	// Tool results appear on tool messages.
	for _, result := range msg.ToolResults {
		responseContent := result.Content
		if result.Error != "" {
			responseContent = fmt.Sprintf("Error: %s", result.Error)
		}

		parts = append(parts, &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				Name: result.Name,
				Response: map[string]any{
					"content": responseContent,
				},
			},
		})
	}

	// Skip empty messages
	if len(parts) == 0 {
		return nil
	}

	return &genai.Content{
		Role:  role,
		Parts: parts,
	}
}

// toGeminiTools converts tool declarations to Gemini tools.
func toGeminiTools(decls []tool.Declaration) []*genai.Tool {
	if len(decls) == 0 {
		return nil
	}

	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(decls))

	for _, decl := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        decl.Name,
			Description: decl.Description,
		}

		if decl.Parameters != nil {
			fd.Parameters = toGeminiSchema(decl.Parameters)
		}

		functionDeclarations = append(functionDeclarations, fd)
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a tool schema to a Gemini Schema.
func toGeminiSchema(schema *tool.Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        toGeminiType(schema.Type),
		Description: schema.Description,
	}

	if schema.Properties != nil {
		out.Properties = make(map[string]*genai.Schema)
		for name, prop := range schema.Properties {
			out.Properties[name] = toGeminiSchema(prop)
		}
	}

	if schema.Items != nil {
		out.Items = toGeminiSchema(schema.Items)
	}

	if len(schema.Required) > 0 {
		out.Required = schema.Required
	}

	if len(schema.Enum) > 0 {
		out.Enum = schema.Enum
	}

	return out
}

// toGeminiType converts a schema type to a Gemini Type.
func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// toGeminiConfig builds the base generation config.
func toGeminiConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
	}
}

// defaultSafetySettings returns safety settings with blocking disabled for
// all categories.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdOff,
		},
	}
}

// fromGeminiResponse converts a Gemini response to the internal format.
func fromGeminiResponse(resp *genai.GenerateContentResponse) (*provider.Response, error) {
	if len(resp.Candidates) == 0 {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeInvalidRequest,
			Message: "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]

	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, &provider.ProviderError{
			Code:      provider.ErrorCodeContentBlocked,
			Message:   "content blocked by safety filters",
			Retryable: false,
		}
	}

	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		return nil, &provider.ProviderError{
			Code:      provider.ErrorCodeContextLength,
			Message:   "response truncated due to max tokens",
			Retryable: false,
		}
	}

	var text strings.Builder
	var calls []tool.Call

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
			if part.FunctionCall != nil {
				calls = append(calls, tool.Call{
					Tool: part.FunctionCall.Name,
					Args: part.FunctionCall.Args,
				})
			}
		}
	}

	return &provider.Response{
		Text:  text.String(),
		Calls: provider.NewCallStream(calls),
	}, nil
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 401, 403:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeAuth,
				Message:    "authentication failed",
				Underlying: err,
				Retryable:  false,
			}
		case 429:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeRateLimit,
				Message:    "rate limit exceeded",
				Underlying: err,
				Retryable:  true,
			}
		case 400:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeInvalidRequest,
				Message:    fmt.Sprintf("invalid request: %s", apiErr.Message),
				Underlying: err,
				Retryable:  false,
			}
		case 500, 502, 503, 504:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeUnavailable,
				Message:    "service unavailable",
				Underlying: err,
				Retryable:  true,
			}
		default:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeNetwork,
				Message:    fmt.Sprintf("API error: %s", apiErr.Message),
				Underlying: err,
				Retryable:  true,
			}
		}
	}

	return &provider.ProviderError{
		Code:       provider.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}
