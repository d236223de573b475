package ai

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FallbackHeroImageURL is returned when the image model answers without an
// inline image part.
const FallbackHeroImageURL = "https://picsum.photos/1200/600"

var (
	ErrEmptyPrompt      = errors.New("prompt must not be empty")
	ErrMalformedContent = errors.New("malformed site content")
	ErrInvalidContent   = errors.New("site content failed validation")
)

// InlineImage is an image returned inline by a model.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// Backend is a generative model provider.
type Backend interface {
	// Name identifies the provider in logs and health output.
	Name() string
	// GenerateStructuredJSON asks the model for a SiteContent object and
	// returns the raw JSON text of the answer.
	GenerateStructuredJSON(ctx context.Context, model, prompt string) (string, error)
	// GenerateImage returns the first inline image of the answer, or nil when
	// the answer carried none.
	GenerateImage(ctx context.Context, model, prompt, aspectRatio string) (*InlineImage, error)
}

// Options configures a Generator.
type Options struct {
	ContentModel    string
	ImageModel      string
	ValidateContent bool
	Logger          *zap.Logger
}

// Generator turns descriptions into site content and hero images. It is
// built once at startup and shared by all handlers.
type Generator struct {
	backend         Backend
	contentModel    string
	imageModel      string
	validateContent bool
	logger          *zap.Logger
}

func NewGenerator(backend Backend, opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		backend:         backend,
		contentModel:    opts.ContentModel,
		imageModel:      opts.ImageModel,
		validateContent: opts.ValidateContent,
		logger:          logger.Named("generator"),
	}
}

// Provider returns the backend name.
func (g *Generator) Provider() string {
	return g.backend.Name()
}

type generationIDKey struct{}

// WithGenerationID returns a copy of ctx carrying id. Generator calls made
// with the returned context log it as generation_id.
func WithGenerationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, generationIDKey{}, id)
}

// GenerationID returns the id attached by WithGenerationID, or "".
func GenerationID(ctx context.Context) string {
	id, _ := ctx.Value(generationIDKey{}).(string)
	return id
}

// generationID returns the id carried by ctx, minting one when absent.
func generationID(ctx context.Context) string {
	if id := GenerationID(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}
