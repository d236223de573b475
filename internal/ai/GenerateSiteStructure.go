package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"baro_site_server/internal/ai/prompts"
	"baro_site_server/internal/ai/utils"
	"baro_site_server/internal/types"
	sharedutils "baro_site_server/internal/utils"

	"go.uber.org/zap"
)

// GenerateSiteStructure makes a single content-model call for the given
// description and parses the answer into SiteContent. The call is not
// retried and an empty or undecodable answer is an error.
func (g *Generator) GenerateSiteStructure(ctx context.Context, description string) (*types.SiteContent, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyPrompt
	}

	log := g.logger.With(zap.String("generation_id", generationID(ctx)), zap.String("model", g.contentModel))
	log.Info("generating site structure", zap.Int("prompt_len", len(description)))

	fullPrompt := prompts.GetSiteStructurePrompt(description)
	llmOutput, err := g.backend.GenerateStructuredJSON(ctx, g.contentModel, fullPrompt)
	if err != nil {
		log.Error("content model call failed", zap.Error(err), zap.Bool("transient", sharedutils.IsTransient(err)))
		return nil, fmt.Errorf("%s content generation failed: %w", g.backend.Name(), err)
	}

	content, err := parseSiteContent(llmOutput)
	if err != nil {
		log.Error("failed to parse content model output", zap.Error(err), zap.Int("output_len", len(llmOutput)))
		return nil, err
	}

	if g.validateContent {
		if err := content.Validate(); err != nil {
			log.Warn("generated content failed validation", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
	}

	log.Info("site structure generated",
		zap.String("brand", content.BrandName),
		zap.Int("features", len(content.Features)),
		zap.Int("plans", len(content.Pricing)),
	)
	return content, nil
}

func parseSiteContent(llmOutput string) (*types.SiteContent, error) {
	cleaned := utils.CleanJSONOutput(llmOutput)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedContent)
	}

	var content types.SiteContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}
	return &content, nil
}
