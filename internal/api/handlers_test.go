package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"baro_site_server/internal/ai"
	"baro_site_server/internal/preview"
	"baro_site_server/internal/site"
	"baro_site_server/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGenerator struct {
	content    *types.SiteContent
	contentErr error
	heroImage  string
	imageErr   error

	imageCalls int
	prompts    []string
	ids        []string
}

func (f *fakeGenerator) GenerateSiteStructure(ctx context.Context, description string) (*types.SiteContent, error) {
	f.prompts = append(f.prompts, description)
	f.ids = append(f.ids, ai.GenerationID(ctx))
	if f.contentErr != nil {
		return nil, f.contentErr
	}
	c := *f.content
	return &c, nil
}

func (f *fakeGenerator) GenerateHeroImage(ctx context.Context, _, _ string) (string, error) {
	f.imageCalls++
	f.ids = append(f.ids, ai.GenerationID(ctx))
	return f.heroImage, f.imageErr
}

func (f *fakeGenerator) Provider() string { return "fake" }

func beanLoop() *types.SiteContent {
	return &types.SiteContent{
		BrandName: "BeanLoop",
		Hero:      types.Hero{Title: "Coffee, Delivered Fresh", Subtitle: "Small-batch roasts at your door.", CTA: "Start Brewing"},
		Features: []types.Feature{
			{Title: "Fresh Roasts", Description: "Roasted weekly.", Icon: "Coffee"},
		},
		About: types.About{Title: "Our Story", Text: "Started in a garage."},
		Pricing: []types.PricingPlan{
			{Plan: "Starter", Price: "$12", Features: []string{"1 bag"}},
			{Plan: "Regular", Price: "$22", Features: []string{"2 bags"}},
		},
		Contact: types.Contact{Email: "hi@beanloop.com", Address: "12 Roast St"},
	}
}

func newTestRouter(t *testing.T, gen SiteGenerator, logger *zap.Logger) *gin.Engine {
	t.Helper()
	renderer, err := preview.New()
	require.NoError(t, err)
	studio, err := site.NewHandler(nil, zap.NewNop())
	require.NoError(t, err)
	if logger == nil {
		logger = zap.NewNop()
	}
	h := NewAPIHandler(gen, renderer, studio, logger)

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.POST("/api/generate", h.GenerateSite)
	r.POST("/api/preview", h.PreviewSite)
	r.GET("/generator", h.Studio)
	r.POST("/generator", h.StudioGenerate)
	r.GET("/health", h.Health)
	return r
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateSite(t *testing.T) {
	t.Run("content only", func(t *testing.T) {
		gen := &fakeGenerator{content: beanLoop()}
		r := newTestRouter(t, gen, nil)

		w := postJSON(r, "/api/generate", gin.H{"prompt": "a coffee subscription"})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp GenerateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.GenerationID)
		assert.Equal(t, "BeanLoop", resp.Content.BrandName)
		assert.Empty(t, resp.HeroImage)
		assert.Zero(t, gen.imageCalls)
		assert.Equal(t, []string{"a coffee subscription"}, gen.prompts)
	})

	t.Run("with hero image", func(t *testing.T) {
		gen := &fakeGenerator{content: beanLoop(), heroImage: "data:image/png;base64,AAAA"}
		r := newTestRouter(t, gen, nil)

		w := postJSON(r, "/api/generate", gin.H{"prompt": "coffee", "includeImage": true})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp GenerateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "data:image/png;base64,AAAA", resp.HeroImage)
		assert.Equal(t, 1, gen.imageCalls)
	})
}

func TestGenerateSiteSharesGenerationID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	gen := &fakeGenerator{content: beanLoop(), heroImage: "data:image/png;base64,AAAA"}
	r := newTestRouter(t, gen, zap.New(core))

	w := postJSON(r, "/api/generate", gin.H{"prompt": "coffee", "includeImage": true})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.GenerationID)
	assert.Equal(t, []string{resp.GenerationID, resp.GenerationID}, gen.ids)

	entries := logs.FilterMessage("site generation successful").All()
	require.Len(t, entries, 1)
	assert.Equal(t, resp.GenerationID, entries[0].ContextMap()["generation_id"])

	// A second request gets its own id.
	w = postJSON(r, "/api/generate", gin.H{"prompt": "tea"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, gen.ids, 3)
	assert.NotEqual(t, resp.GenerationID, gen.ids[2])
}

func TestGenerateSiteErrors(t *testing.T) {
	tests := []struct {
		name   string
		gen    *fakeGenerator
		body   any
		status int
	}{
		{"missing prompt", &fakeGenerator{content: beanLoop()}, gin.H{}, http.StatusBadRequest},
		{"blank prompt", &fakeGenerator{content: beanLoop()}, gin.H{"prompt": "   "}, http.StatusBadRequest},
		{
			"malformed model output",
			&fakeGenerator{contentErr: fmt.Errorf("%w: unexpected end of JSON input", ai.ErrMalformedContent)},
			gin.H{"prompt": "coffee"},
			http.StatusBadGateway,
		},
		{
			"provider failure",
			&fakeGenerator{contentErr: errors.New("gemini content generation failed: 503")},
			gin.H{"prompt": "coffee"},
			http.StatusBadGateway,
		},
		{
			"deadline",
			&fakeGenerator{contentErr: fmt.Errorf("gemini content generation failed: %w", context.DeadlineExceeded)},
			gin.H{"prompt": "coffee"},
			http.StatusGatewayTimeout,
		},
		{
			"image failure propagates",
			&fakeGenerator{content: beanLoop(), imageErr: errors.New("gemini image generation failed: quota")},
			gin.H{"prompt": "coffee", "includeImage": true},
			http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, tt.gen, nil)
			w := postJSON(r, "/api/generate", tt.body)
			assert.Equal(t, tt.status, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestPreviewSite(t *testing.T) {
	r := newTestRouter(t, &fakeGenerator{}, nil)

	t.Run("renders html", func(t *testing.T) {
		w := postJSON(r, "/api/preview", PreviewRequest{Content: *beanLoop(), HeroImage: "https://example.com/hero.png"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		body := w.Body.String()
		assert.Contains(t, body, "Start Brewing")
		assert.Contains(t, body, `src="https://example.com/hero.png"`)
		assert.Contains(t, body, `data-highlighted="true"`)
	})

	t.Run("rejects incomplete content", func(t *testing.T) {
		content := *beanLoop()
		content.Hero.CTA = ""
		w := postJSON(r, "/api/preview", PreviewRequest{Content: content})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "hero.cta")
	})
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStudio(t *testing.T) {
	t.Run("form", func(t *testing.T) {
		r := newTestRouter(t, &fakeGenerator{}, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generator", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/generator"`)
		assert.Contains(t, w.Body.String(), ">fake<")
	})

	t.Run("generates preview", func(t *testing.T) {
		gen := &fakeGenerator{content: beanLoop(), heroImage: ai.FallbackHeroImageURL}
		r := newTestRouter(t, gen, nil)

		w := postForm(r, "/generator", url.Values{"prompt": {"coffee"}, "includeImage": {"true"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Powered by SparkSite AI.")
		assert.Contains(t, w.Body.String(), ai.FallbackHeroImageURL)
		assert.Equal(t, 1, gen.imageCalls)
		require.Len(t, gen.ids, 2)
		assert.NotEmpty(t, gen.ids[0])
		assert.Equal(t, gen.ids[0], gen.ids[1])
	})

	t.Run("error keeps prompt", func(t *testing.T) {
		gen := &fakeGenerator{contentErr: fmt.Errorf("%w: missing required fields: hero.cta", ai.ErrInvalidContent)}
		r := newTestRouter(t, gen, nil)

		w := postForm(r, "/generator", url.Values{"prompt": {"tea shop"}})
		assert.Equal(t, http.StatusBadGateway, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "hero.cta")
		assert.Contains(t, body, ">tea shop</textarea>")
	})

	t.Run("empty prompt", func(t *testing.T) {
		gen := &fakeGenerator{content: beanLoop()}
		r := newTestRouter(t, gen, nil)

		w := postForm(r, "/generator", url.Values{"prompt": {""}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, gen.prompts)
	})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &fakeGenerator{}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","provider":"fake"}`, w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newTestRouter(t, &fakeGenerator{}, zap.New(core))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/health", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
}
