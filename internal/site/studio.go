package site

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// StudioView backs the generator studio form.
type StudioView struct {
	Prompt       string
	IncludeImage bool
	Error        string
	Provider     string
}

// RenderStudio writes the generator studio page.
func (h *Handler) RenderStudio(c *gin.Context, code int, view StudioView) {
	c.Render(code, render.HTML{Template: h.studio, Name: "studio.html", Data: view})
}
