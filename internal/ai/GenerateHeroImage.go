package ai

import (
	"context"
	"fmt"

	"baro_site_server/internal/ai/prompts"
	"baro_site_server/internal/ai/utils"
	sharedutils "baro_site_server/internal/utils"

	"go.uber.org/zap"
)

// GenerateHeroImage requests one 16:9 hero background for the brand and
// returns it as a data URI. When the answer has no inline image the
// placeholder URL is returned instead; request errors are passed through.
func (g *Generator) GenerateHeroImage(ctx context.Context, brandName, heroTitle string) (string, error) {
	log := g.logger.With(
		zap.String("generation_id", generationID(ctx)),
		zap.String("model", g.imageModel),
		zap.String("brand", brandName),
	)

	prompt := prompts.GetHeroImagePrompt(brandName, heroTitle)
	img, err := g.backend.GenerateImage(ctx, g.imageModel, prompt, prompts.HeroAspectRatio)
	if err != nil {
		log.Error("image model call failed", zap.Error(err), zap.Bool("transient", sharedutils.IsTransient(err)))
		return "", fmt.Errorf("%s image generation failed: %w", g.backend.Name(), err)
	}
	if img == nil || len(img.Data) == 0 {
		log.Warn("no inline image in response, using placeholder")
		return FallbackHeroImageURL, nil
	}

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = sharedutils.DetectImageMIME(img.Data)
	}
	log.Info("hero image generated", zap.String("mime", mimeType), zap.Int("bytes", len(img.Data)))
	return utils.DataURI(mimeType, img.Data), nil
}
