package api

import (
	handlers "baro_site_server/internal/api"
	"baro_site_server/internal/site"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the site pages and the generator endpoints.
func RegisterRoutes(router *gin.Engine, h *handlers.APIHandler, s *site.Handler) {

	// --- Marketing site ---
	router.GET("/", s.Home)
	router.GET("/services", s.Services)
	router.GET("/request", s.RequestForm)
	router.POST("/request", s.SubmitRequest)
	router.GET("/contact", s.ContactForm)
	router.POST("/contact", s.SubmitContact)
	router.GET("/page/:page", s.Page)

	// --- Generator studio ---
	router.GET("/generator", h.Studio)
	router.POST("/generator", h.StudioGenerate)

	// --- JSON API ---
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/generate", h.GenerateSite)
		apiGroup.POST("/preview", h.PreviewSite)
	}

	router.GET("/health", h.Health)

	router.NoRoute(s.NotFound)
}
