package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"baro_site_server/internal/ai"
	"baro_site_server/internal/site"
	"baro_site_server/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SiteGenerator produces site content and hero images.
type SiteGenerator interface {
	GenerateSiteStructure(ctx context.Context, description string) (*types.SiteContent, error)
	GenerateHeroImage(ctx context.Context, brandName, heroTitle string) (string, error)
	Provider() string
}

// PreviewRenderer renders SiteContent as a standalone HTML page.
type PreviewRenderer interface {
	Render(w io.Writer, content types.SiteContent, heroImage string) error
}

// StudioRenderer renders the generator studio form.
type StudioRenderer interface {
	RenderStudio(c *gin.Context, code int, view site.StudioView)
}

// APIHandler holds dependencies for the generator endpoints.
type APIHandler struct {
	generator SiteGenerator
	renderer  PreviewRenderer
	studio    StudioRenderer
	logger    *zap.Logger
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(generator SiteGenerator, renderer PreviewRenderer, studio StudioRenderer, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		generator: generator,
		renderer:  renderer,
		studio:    studio,
		logger:    logger.Named("api"),
	}
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Prompt       string `json:"prompt" binding:"required"`
	IncludeImage bool   `json:"includeImage"`
}

type GenerateResponse struct {
	GenerationID string            `json:"generationId"`
	Content      types.SiteContent `json:"content"`
	HeroImage    string            `json:"heroImage,omitempty"`
}

type PreviewRequest struct {
	Content   types.SiteContent `json:"content"`
	HeroImage string            `json:"heroImage"`
}

type StudioForm struct {
	Prompt       string `form:"prompt"`
	IncludeImage bool   `form:"includeImage"`
}

// --- API Handlers ---

// POST /api/generate
func (h *APIHandler) GenerateSite(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	generationID := uuid.New().String()
	log := h.logger.With(zap.String("generation_id", generationID))
	ctx := ai.WithGenerationID(c.Request.Context(), generationID)

	content, heroImage, err := h.generate(ctx, req.Prompt, req.IncludeImage)
	if err != nil {
		log.Error("site generation failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	log.Info("site generation successful", zap.String("brand", content.BrandName), zap.Bool("hero_image", heroImage != ""))
	c.JSON(http.StatusCreated, GenerateResponse{
		GenerationID: generationID,
		Content:      *content,
		HeroImage:    heroImage,
	})
}

// POST /api/preview
func (h *APIHandler) PreviewSite(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := req.Content.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	h.writePreview(c, req.Content, req.HeroImage)
}

// GET /generator
func (h *APIHandler) Studio(c *gin.Context) {
	h.studio.RenderStudio(c, http.StatusOK, site.StudioView{Provider: h.generator.Provider()})
}

// POST /generator
func (h *APIHandler) StudioGenerate(c *gin.Context) {
	var form StudioForm
	if err := c.ShouldBind(&form); err != nil {
		h.studio.RenderStudio(c, http.StatusBadRequest, site.StudioView{
			Error:    "Invalid form submission: " + err.Error(),
			Provider: h.generator.Provider(),
		})
		return
	}

	generationID := uuid.New().String()
	ctx := ai.WithGenerationID(c.Request.Context(), generationID)

	content, heroImage, err := h.generate(ctx, form.Prompt, form.IncludeImage)
	if err != nil {
		h.logger.Error("studio generation failed", zap.Error(err), zap.String("generation_id", generationID))
		h.studio.RenderStudio(c, statusForError(err), site.StudioView{
			Prompt:       form.Prompt,
			IncludeImage: form.IncludeImage,
			Error:        err.Error(),
			Provider:     h.generator.Provider(),
		})
		return
	}
	h.writePreview(c, *content, heroImage)
}

// GET /health
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "provider": h.generator.Provider()})
}

// generate runs the content call and, when requested, the hero image call.
func (h *APIHandler) generate(ctx context.Context, prompt string, includeImage bool) (*types.SiteContent, string, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, "", ai.ErrEmptyPrompt
	}
	content, err := h.generator.GenerateSiteStructure(ctx, prompt)
	if err != nil {
		return nil, "", err
	}
	if !includeImage {
		return content, "", nil
	}
	heroImage, err := h.generator.GenerateHeroImage(ctx, content.BrandName, content.Hero.Title)
	if err != nil {
		return nil, "", err
	}
	return content, heroImage, nil
}

func (h *APIHandler) writePreview(c *gin.Context, content types.SiteContent, heroImage string) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, content, heroImage); err != nil {
		h.logger.Error("preview render failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render preview"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// statusForError maps generation errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ai.ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		// Provider failures, malformed or invalid content.
		return http.StatusBadGateway
	}
}
