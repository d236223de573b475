package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"baro_site_server/internal/ai/prompts"
	"baro_site_server/internal/types"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	DefaultOpenAIContentModel = openai.GPT4o
	DefaultOpenAIImageModel   = openai.CreateImageModelDallE3
)

// OpenAIBackend talks to the OpenAI API through go-openai.
type OpenAIBackend struct {
	client *openai.Client
}

var _ Backend = (*OpenAIBackend)(nil)

// NewOpenAIBackend builds a backend for apiKey. A non-empty baseURL replaces
// the default API endpoint.
func NewOpenAIBackend(apiKey, baseURL string) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIBackend{client: openai.NewClientWithConfig(config)}, nil
}

func (b *OpenAIBackend) Name() string { return "openai" }

func (b *OpenAIBackend) GenerateStructuredJSON(ctx context.Context, model, prompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.SiteStructureSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "site_content",
				Schema: siteContentOpenAISchema(),
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (b *OpenAIBackend) GenerateImage(ctx context.Context, model, prompt, aspectRatio string) (*InlineImage, error) {
	resp, err := b.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          model,
		N:              1,
		Size:           openAIImageSize(aspectRatio),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, err
	}
	for _, item := range resp.Data {
		if item.B64JSON == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image payload: %w", err)
		}
		// The images API does not report a MIME type.
		return &InlineImage{Data: data}, nil
	}
	return nil, nil
}

// openAIImageSize maps an aspect ratio onto the closest size dall-e-3 accepts.
func openAIImageSize(aspectRatio string) string {
	switch aspectRatio {
	case "16:9":
		return openai.CreateImageSize1792x1024
	case "9:16":
		return openai.CreateImageSize1024x1792
	default:
		return openai.CreateImageSize1024x1024
	}
}

func siteContentOpenAISchema() *jsonschema.Definition {
	str := jsonschema.Definition{Type: jsonschema.String}
	object := func(props map[string]jsonschema.Definition, required ...string) jsonschema.Definition {
		return jsonschema.Definition{
			Type:                 jsonschema.Object,
			Properties:           props,
			Required:             required,
			AdditionalProperties: false,
		}
	}
	array := func(items jsonschema.Definition) jsonschema.Definition {
		return jsonschema.Definition{Type: jsonschema.Array, Items: &items}
	}

	root := object(map[string]jsonschema.Definition{
		"brandName": str,
		"hero": object(map[string]jsonschema.Definition{
			"title":    str,
			"subtitle": str,
			"cta":      str,
		}, "title", "subtitle", "cta"),
		"features": array(object(map[string]jsonschema.Definition{
			"title":       str,
			"description": str,
			"icon":        {Type: jsonschema.String, Enum: types.IconNames(), Description: prompts.IconHint},
		}, "title", "description", "icon")),
		"about": object(map[string]jsonschema.Definition{
			"title": str,
			"text":  str,
		}, "title", "text"),
		"pricing": array(object(map[string]jsonschema.Definition{
			"plan":     str,
			"price":    str,
			"features": array(str),
		}, "plan", "price", "features")),
		"contact": object(map[string]jsonschema.Definition{
			"email":   str,
			"address": str,
		}, "email", "address"),
	}, siteContentRequired...)
	return &root
}
