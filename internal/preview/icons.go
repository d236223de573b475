package preview

import (
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"baro_site_server/internal/types"
)

// Icon is a symbol from the preview icon catalog. The zero value is the
// fallback glyph.
type Icon int

const (
	IconHelpCircle Icon = iota
	IconAward
	IconCalendar
	IconCheck
	IconCheckCircle2
	IconClock
	IconCoffee
	IconGithub
	IconGlobe
	IconHeart
	IconLeaf
	IconLinkedin
	IconLock
	IconMail
	IconMapPin
	IconPackage
	IconPhone
	IconRocket
	IconShield
	IconShieldCheck
	IconSmile
	IconSparkles
	IconStar
	IconTrendingUp
	IconTruck
	IconTwitter
	IconUsers
	IconZap
)

// iconBodies holds the inner SVG markup of each glyph on a 24x24 lucide grid.
var iconBodies = [len(types.IconCatalog)]string{
	IconHelpCircle:   `<circle cx="12" cy="12" r="10"/><path d="M9.09 9a3 3 0 0 1 5.83 1c0 2-3 3-3 3"/><path d="M12 17h.01"/>`,
	IconAward:        `<circle cx="12" cy="8" r="6"/><path d="M15.477 12.89 17 22l-5-3-5 3 1.523-9.11"/>`,
	IconCalendar:     `<rect width="18" height="18" x="3" y="4" rx="2" ry="2"/><line x1="16" x2="16" y1="2" y2="6"/><line x1="8" x2="8" y1="2" y2="6"/><line x1="3" x2="21" y1="10" y2="10"/>`,
	IconCheck:        `<path d="M20 6 9 17l-5-5"/>`,
	IconCheckCircle2: `<circle cx="12" cy="12" r="10"/><path d="m9 12 2 2 4-4"/>`,
	IconClock:        `<circle cx="12" cy="12" r="10"/><polyline points="12 6 12 12 16 14"/>`,
	IconCoffee:       `<path d="M17 8h1a4 4 0 1 1 0 8h-1"/><path d="M3 8h14v9a4 4 0 0 1-4 4H7a4 4 0 0 1-4-4Z"/><line x1="6" x2="6" y1="2" y2="4"/><line x1="10" x2="10" y1="2" y2="4"/><line x1="14" x2="14" y1="2" y2="4"/>`,
	IconGithub:       `<path d="M15 22v-4a4.8 4.8 0 0 0-1-3.5c3 0 6-2 6-5.5.08-1.25-.27-2.48-1-3.5.28-1.15.28-2.35 0-3.5 0 0-1 0-3 1.5-2.64-.5-5.36-.5-8 0C6 2 5 2 5 2c-.3 1.15-.3 2.35 0 3.5A5.403 5.403 0 0 0 4 9c0 3.5 3 5.5 6 5.5-.39.49-.68 1.05-.85 1.65-.17.6-.22 1.23-.15 1.85v4"/><path d="M9 18c-4.51 2-5-2-7-2"/>`,
	IconGlobe:        `<circle cx="12" cy="12" r="10"/><path d="M12 2a14.5 14.5 0 0 0 0 20 14.5 14.5 0 0 0 0-20"/><path d="M2 12h20"/>`,
	IconHeart:        `<path d="M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"/>`,
	IconLeaf:         `<path d="M11 20A7 7 0 0 1 9.8 6.1C15.5 5 17 4.48 19 2c1 2 2 4.18 2 8 0 5.5-4.78 10-10 10Z"/><path d="M2 21c0-3 1.85-5.36 5.08-6C9.5 14.52 12 13 13 12"/>`,
	IconLinkedin:     `<path d="M16 8a6 6 0 0 1 6 6v7h-4v-7a2 2 0 0 0-2-2 2 2 0 0 0-2 2v7h-4v-7a6 6 0 0 1 6-6z"/><rect width="4" height="12" x="2" y="9"/><circle cx="4" cy="4" r="2"/>`,
	IconLock:         `<rect width="18" height="11" x="3" y="11" rx="2" ry="2"/><path d="M7 11V7a5 5 0 0 1 10 0v4"/>`,
	IconMail:         `<rect width="20" height="16" x="2" y="4" rx="2"/><path d="m22 7-8.97 5.7a1.94 1.94 0 0 1-2.06 0L2 7"/>`,
	IconMapPin:       `<path d="M20 10c0 6-8 12-8 12s-8-6-8-12a8 8 0 0 1 16 0Z"/><circle cx="12" cy="10" r="3"/>`,
	IconPackage:      `<path d="m7.5 4.27 9 5.15"/><path d="M21 8a2 2 0 0 0-1-1.73l-7-4a2 2 0 0 0-2 0l-7 4A2 2 0 0 0 3 8v8a2 2 0 0 0 1 1.73l7 4a2 2 0 0 0 2 0l7-4A2 2 0 0 0 21 16Z"/><path d="m3.3 7 8.7 5 8.7-5"/><path d="M12 22V12"/>`,
	IconPhone:        `<path d="M22 16.92v3a2 2 0 0 1-2.18 2 19.79 19.79 0 0 1-8.63-3.07 19.5 19.5 0 0 1-6-6 19.79 19.79 0 0 1-3.07-8.67A2 2 0 0 1 4.11 2h3a2 2 0 0 1 2 1.72 12.84 12.84 0 0 0 .7 2.81 2 2 0 0 1-.45 2.11L8.09 9.91a16 16 0 0 0 6 6l1.27-1.27a2 2 0 0 1 2.11-.45 12.84 12.84 0 0 0 2.81.7A2 2 0 0 1 22 16.92z"/>`,
	IconRocket:       `<path d="M4.5 16.5c-1.5 1.26-2 5-2 5s3.74-.5 5-2c.71-.84.7-2.13-.09-2.91a2.18 2.18 0 0 0-2.91-.09z"/><path d="m12 15-3-3a22 22 0 0 1 2-3.95A12.88 12.88 0 0 1 22 2c0 2.72-.78 7.5-6 11a22.35 22.35 0 0 1-4 2z"/><path d="M9 12H4s.55-3.03 2-4c1.62-1.08 5 0 5 0"/><path d="M12 15v5s3.03-.55 4-2c1.08-1.62 0-5 0-5"/>`,
	IconShield:       `<path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z"/>`,
	IconShieldCheck:  `<path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z"/><path d="m9 12 2 2 4-4"/>`,
	IconSmile:        `<circle cx="12" cy="12" r="10"/><path d="M8 14s1.5 2 4 2 4-2 4-2"/><line x1="9" x2="9.01" y1="9" y2="9"/><line x1="15" x2="15.01" y1="9" y2="9"/>`,
	IconSparkles:     `<path d="m12 3-1.9 5.8a2 2 0 0 1-1.3 1.3L3 12l5.8 1.9a2 2 0 0 1 1.3 1.3L12 21l1.9-5.8a2 2 0 0 1 1.3-1.3L21 12l-5.8-1.9a2 2 0 0 1-1.3-1.3Z"/>`,
	IconStar:         `<polygon points="12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2"/>`,
	IconTrendingUp:   `<polyline points="22 7 13.5 15.5 8.5 10.5 2 17"/><polyline points="16 7 22 7 22 13"/>`,
	IconTruck:        `<path d="M14 18V6a2 2 0 0 0-2-2H4a2 2 0 0 0-2 2v11a1 1 0 0 0 1 1h2"/><path d="M15 18H9"/><path d="M19 18h2a1 1 0 0 0 1-1v-3.65a1 1 0 0 0-.22-.624l-3.48-4.35A1 1 0 0 0 17.52 8H14"/><circle cx="17" cy="18" r="2"/><circle cx="7" cy="18" r="2"/>`,
	IconTwitter:      `<path d="M22 4s-.7 2.1-2 3.4c1.6 10-9.4 17.3-18 11.6 2.2.1 4.4-.6 6-2C3 15.5.5 9.6 3 5c2.2 2.6 5.6 4.1 9 4-.9-4.2 4-6.6 7-3.8 1.1 0 3-1.2 3-1.2z"/>`,
	IconUsers:        `<path d="M16 21v-2a4 4 0 0 0-4-4H6a4 4 0 0 0-4 4v2"/><circle cx="9" cy="7" r="4"/><path d="M22 21v-2a4 4 0 0 0-3-3.87"/><path d="M16 3.13a4 4 0 0 1 0 7.75"/>`,
	IconZap:          `<path d="M13 2 3 14h9l-1 8 10-12h-9l1-8z"/>`,
}

var iconsByName = func() map[string]Icon {
	m := make(map[string]Icon, len(types.IconCatalog))
	for i, name := range types.IconCatalog {
		m[name] = Icon(i)
	}
	return m
}()

// ResolveIcon maps a catalog name onto its Icon. Lookup is exact and
// case-sensitive; unknown names resolve to IconHelpCircle.
func ResolveIcon(name string) Icon {
	if icon, ok := iconsByName[name]; ok {
		return icon
	}
	return IconHelpCircle
}

// IconNames returns every catalog name in declaration order.
func IconNames() []string { return types.IconNames() }

func (i Icon) valid() bool { return i >= 0 && int(i) < len(types.IconCatalog) }

func (i Icon) Name() string {
	if !i.valid() {
		return types.IconCatalog[IconHelpCircle]
	}
	return types.IconCatalog[i]
}

// SVG renders the built-in glyph as inline markup carrying the given CSS classes.
func (i Icon) SVG(class string) template.HTML {
	return (*IconSet)(nil).SVG(i, class)
}

// ErrUnknownIcon is returned when an override names an icon outside the catalog.
var ErrUnknownIcon = errors.New("unknown icon")

// IconSet is the glyph table used by a renderer. Overrides replace the
// body of a catalog icon with caller-supplied markup, which is sanitized
// before it is stored. A nil *IconSet draws the built-in glyphs.
type IconSet struct {
	bodies [len(types.IconCatalog)]string
}

func NewIconSet() *IconSet {
	return &IconSet{bodies: iconBodies}
}

// Override sanitizes markup and uses it for the named icon. A full <svg>
// document is accepted; only its drawable children are kept.
func (s *IconSet) Override(name, markup string) error {
	icon, ok := iconsByName[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownIcon, name)
	}
	body := sanitizeIconMarkup(markup)
	if !strings.Contains(body, "<") {
		return fmt.Errorf("icon %s has no drawable markup after sanitizing", name)
	}
	s.bodies[icon] = body
	return nil
}

// SVG renders icon i wrapped in the standard 24x24 stroke frame.
func (s *IconSet) SVG(i Icon, class string) template.HTML {
	if !i.valid() {
		i = IconHelpCircle
	}
	body := iconBodies[i]
	if s != nil {
		body = s.bodies[i]
	}
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="24" height="24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true" data-icon="%s" class="%s">%s</svg>`,
		i.Name(), template.HTMLEscapeString(class), body,
	))
}

// Lookup resolves name and renders it; unknown names draw the fallback glyph.
func (s *IconSet) Lookup(name, class string) template.HTML {
	return s.SVG(ResolveIcon(name), class)
}

// LoadIconDir builds an IconSet from dir, where each <Name>.svg file
// overrides the catalog icon of that name. An empty dir yields the
// built-in set.
func LoadIconDir(dir string) (*IconSet, error) {
	set := NewIconSet()
	if dir == "" {
		return set, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".svg" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read icon %s: %w", entry.Name(), err)
		}
		if err := set.Override(strings.TrimSuffix(entry.Name(), ".svg"), string(raw)); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}
	return set, nil
}

var iconShapes = []string{"path", "circle", "ellipse", "rect", "line", "polyline", "polygon"}

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

func sanitizeIconMarkup(raw string) string {
	return strings.TrimSpace(iconSanitizer().Sanitize(raw))
}

// iconSanitizer keeps shape elements and their geometry. The outer <svg>
// is not allowed, so a whole file collapses to its children.
func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.SkipElementsContent("title", "desc", "script", "style", "foreignobject")
		policy.AllowElements(iconShapes...)
		policy.AllowNoAttrs().OnElements("g")
		policy.AllowAttrs("fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin", "opacity").
			OnElements(append([]string{"g"}, iconShapes...)...)
		policy.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
			"points", "rx", "ry", "width", "height",
		).OnElements(iconShapes...)
		iconPolicy = policy
	})
	return iconPolicy
}
