package site

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"baro_site_server/internal/preview"
	"baro_site_server/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const BrandName = "바로심부름"

// Submitter delivers form payloads to the relay.
type Submitter interface {
	Submit(ctx context.Context, payload any) error
}

// Handler serves the errand-service marketing pages and their forms.
type Handler struct {
	relay  Submitter
	logger *zap.Logger
	now    func() time.Time
	pages  map[string]*template.Template
	studio *template.Template
	icons  *preview.IconSet
}

type Option func(*Handler)

// WithClock overrides the clock used for footer years.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithIcons draws page icons from set instead of the built-in glyphs.
func WithIcons(set *preview.IconSet) Option {
	return func(h *Handler) {
		h.icons = set
	}
}

// pageTemplates are the views composed into the shared layout.
var pageTemplates = []string{
	string(types.PageHome),
	string(types.PageServices),
	string(types.PageRequest),
	string(types.PageContact),
	"notfound",
}

func NewHandler(relay Submitter, logger *zap.Logger, opts ...Option) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		relay:  relay,
		logger: logger.Named("site"),
		now:    time.Now,
		pages:  make(map[string]*template.Template, len(pageTemplates)),
	}
	for _, opt := range opts {
		opt(h)
	}

	funcs := template.FuncMap{
		"icon": func(name, class string) template.HTML { return h.icons.Lookup(name, class) },
	}
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout template: %w", err)
	}
	for _, name := range pageTemplates {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		h.pages[name] = t
	}

	h.studio, err = template.New("studio.html").Funcs(funcs).ParseFS(templateFS, "templates/studio.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse studio template: %w", err)
	}
	return h, nil
}

type navItem struct {
	Page   types.PageType
	Label  string
	Href   string
	Active bool
}

var navLabels = map[types.PageType]string{
	types.PageHome:     "홈",
	types.PageServices: "서비스 안내",
	types.PageContact:  "문의하기",
	types.PageRequest:  "심부름 신청하기",
}

func pagePath(p types.PageType) string {
	if p == types.PageHome {
		return "/"
	}
	return "/" + string(p)
}

// pageView is the data every page template receives.
type pageView struct {
	Brand     string
	Page      types.PageType
	Nav       []navItem
	Year      int
	Submitted bool
	Error     string
	Alert     string
	Request   types.RequestFormData
	Contact   types.ContactFormData
	Services  []serviceItem
	Values    []valueItem
	Assurance []assuranceItem
}

func (h *Handler) newView(page types.PageType) *pageView {
	nav := make([]navItem, 0, len(types.Pages))
	for _, p := range types.Pages {
		nav = append(nav, navItem{Page: p, Label: navLabels[p], Href: pagePath(p), Active: p == page})
	}
	return &pageView{
		Brand: BrandName,
		Page:  page,
		Nav:   nav,
		Year:  h.now().Year(),
	}
}

func (h *Handler) render(c *gin.Context, code int, name string, view *pageView) {
	t, ok := h.pages[name]
	if !ok {
		h.logger.Error("unknown page template", zap.String("template", name))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Render(code, render.HTML{Template: t, Name: "layout.html", Data: view})
}
