package types

// PageType identifies one of the marketing site views.
type PageType string

const (
	PageHome     PageType = "home"
	PageServices PageType = "services"
	PageRequest  PageType = "request"
	PageContact  PageType = "contact"
)

// Pages lists every navigable page in menu order.
var Pages = []PageType{PageHome, PageServices, PageContact, PageRequest}

// ParsePageType maps a raw identifier onto a known page.
func ParsePageType(raw string) (PageType, bool) {
	for _, p := range Pages {
		if string(p) == raw {
			return p, true
		}
	}
	return "", false
}

// RequestFormData is the errand request form. All four fields are required.
type RequestFormData struct {
	Name          string `form:"name" json:"name" binding:"required"`
	Phone         string `form:"phone" json:"phone" binding:"required"`
	Content       string `form:"content" json:"content" binding:"required"`
	PreferredTime string `form:"preferredTime" json:"preferredTime" binding:"required"`
}

// ContactFormData is the general inquiry form.
type ContactFormData struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required"`
	Message string `form:"message" json:"message" binding:"required"`
}
