package preview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"baro_site_server/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// HighlightedPlanIndex is the pricing position rendered as the featured plan.
// The highlight is purely positional; plans carry no "featured" flag.
const HighlightedPlanIndex = 1

// IsHighlightedPlan reports whether the plan at index gets the featured
// treatment in a list of count plans. Lists shorter than two have no
// highlighted plan.
func IsHighlightedPlan(index, count int) bool {
	return count > HighlightedPlanIndex && index == HighlightedPlanIndex
}

// Renderer turns SiteContent into a single-page HTML preview.
type Renderer struct {
	tmpl  *template.Template
	now   func() time.Time
	icons *IconSet
}

type Option func(*Renderer)

// WithClock overrides the clock used for the footer copyright year.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIcons draws feature and chrome icons from set instead of the
// built-in glyphs.
func WithIcons(set *IconSet) Option {
	return func(r *Renderer) {
		r.icons = set
	}
}

func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	tmpl, err := template.New("preview").Funcs(template.FuncMap{
		"icon": func(name, class string) template.HTML { return r.icons.Lookup(name, class) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

type pricingCard struct {
	types.PricingPlan
	Highlighted bool
}

type pageData struct {
	Content      types.SiteContent
	HeroImage    any // template.URL for trusted sources, string otherwise
	HasHeroImage bool
	AboutLines   []string
	AboutImage   string
	Pricing      []pricingCard
	Year         int
}

// Render writes the preview for content. heroImage is a data URI or remote
// URL; an empty string renders the header without an image block.
func (r *Renderer) Render(w io.Writer, content types.SiteContent, heroImage string) error {
	data := pageData{
		Content:      content,
		HeroImage:    imageSource(heroImage),
		HasHeroImage: heroImage != "",
		AboutLines:   splitLines(content.About.Text),
		AboutImage:   "https://picsum.photos/seed/" + url.PathEscape(content.BrandName) + "/600/400",
		Pricing:      make([]pricingCard, len(content.Pricing)),
		Year:         r.now().Year(),
	}
	for i, plan := range content.Pricing {
		data.Pricing[i] = pricingCard{PricingPlan: plan, Highlighted: IsHighlightedPlan(i, len(content.Pricing))}
	}

	// Render into a buffer so a template error never leaves a partial page.
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "preview.html", data); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderString is a convenience wrapper around Render.
func (r *Renderer) RenderString(content types.SiteContent, heroImage string) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, content, heroImage); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// imageSource marks data:image URIs and http(s) URLs as safe so the template
// emits them verbatim; anything else is left to html/template's URL filter.
func imageSource(raw string) any {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "data:image/") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "http://") {
		return template.URL(raw)
	}
	return raw
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
