package ai

import (
	"context"
	"fmt"
	"strings"

	"baro_site_server/internal/ai/prompts"
	"baro_site_server/internal/types"

	"google.golang.org/genai"
)

const (
	DefaultGeminiContentModel = "gemini-3-flash-preview"
	DefaultGeminiImageModel   = "gemini-2.5-flash-image"
)

// geminiModels is the subset of *genai.Models used here.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiBackend talks to the Gemini API through google.golang.org/genai.
type GeminiBackend struct {
	models geminiModels
}

var _ Backend = (*GeminiBackend)(nil)

func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiBackend{models: client.Models}, nil
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) GenerateStructuredJSON(ctx context.Context, model, prompt string) (string, error) {
	resp, err := b.models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   siteContentGeminiSchema(),
	})
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func (b *GeminiBackend) GenerateImage(ctx context.Context, model, prompt, aspectRatio string) (*InlineImage, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := b.models.GenerateContent(ctx, model, contents, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: aspectRatio},
	})
	if err != nil {
		return nil, err
	}
	return firstInlineImage(resp), nil
}

// responseText joins the text parts of the first candidate, skipping thoughts.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// firstInlineImage scans the first candidate's parts in order.
func firstInlineImage(resp *genai.GenerateContentResponse) *InlineImage {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil {
			return &InlineImage{MIMEType: part.InlineData.MIMEType, Data: part.InlineData.Data}
		}
	}
	return nil
}

func siteContentGeminiSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"brandName": str(),
			"hero": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":    str(),
					"subtitle": str(),
					"cta":      str(),
				},
				Required: []string{"title", "subtitle", "cta"},
			},
			"features": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       str(),
						"description": str(),
						"icon":        {Type: genai.TypeString, Format: "enum", Enum: types.IconNames(), Description: prompts.IconHint},
					},
					Required: []string{"title", "description", "icon"},
				},
			},
			"about": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": str(),
					"text":  str(),
				},
				Required: []string{"title", "text"},
			},
			"pricing": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"plan":     str(),
						"price":    str(),
						"features": {Type: genai.TypeArray, Items: str()},
					},
					Required: []string{"plan", "price", "features"},
				},
			},
			"contact": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"email":   str(),
					"address": str(),
				},
				Required: []string{"email", "address"},
			},
		},
		Required:         siteContentRequired,
		PropertyOrdering: siteContentRequired,
	}
}

// siteContentRequired lists the top-level SiteContent fields in render order.
var siteContentRequired = []string{"brandName", "hero", "features", "about", "pricing", "contact"}
