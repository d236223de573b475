package types

// IconCatalog lists every feature icon name the preview can draw, in the
// order of the preview's Icon enum. Index 0 is the fallback glyph.
var IconCatalog = [...]string{
	"HelpCircle",
	"Award",
	"Calendar",
	"Check",
	"CheckCircle2",
	"Clock",
	"Coffee",
	"Github",
	"Globe",
	"Heart",
	"Leaf",
	"Linkedin",
	"Lock",
	"Mail",
	"MapPin",
	"Package",
	"Phone",
	"Rocket",
	"Shield",
	"ShieldCheck",
	"Smile",
	"Sparkles",
	"Star",
	"TrendingUp",
	"Truck",
	"Twitter",
	"Users",
	"Zap",
}

// IconNames returns a copy of IconCatalog for use as a schema enum.
func IconNames() []string {
	names := make([]string, len(IconCatalog))
	copy(names, IconCatalog[:])
	return names
}
