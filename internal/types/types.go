package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// SiteContent is the structured website copy returned by the content model.
// It is built once per generation and never mutated afterwards.
type SiteContent struct {
	BrandName string        `json:"brandName" validate:"required"`
	Hero      Hero          `json:"hero" validate:"required"`
	Features  []Feature     `json:"features" validate:"required,dive"`
	About     About         `json:"about" validate:"required"`
	Pricing   []PricingPlan `json:"pricing" validate:"required,dive"`
	Contact   Contact       `json:"contact" validate:"required"`
}

// Hero is the headline block at the top of the page.
type Hero struct {
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle" validate:"required"`
	CTA      string `json:"cta" validate:"required"` // used as the label of both CTA buttons
}

// Feature is one selling point, drawn with an icon from IconCatalog.
type Feature struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"` // icon catalog name, e.g. "Rocket"
}

// About is the brand story section.
type About struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"` // may contain line breaks
}

// PricingPlan is one pricing tier. Prices are free-form display text.
type PricingPlan struct {
	Plan     string   `json:"plan" validate:"required"`
	Price    string   `json:"price" validate:"required"`
	Features []string `json:"features" validate:"required"`
}

// Contact is the footer contact information.
type Contact struct {
	Email   string `json:"email" validate:"required"`
	Address string `json:"address" validate:"required"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func contentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names so errors read like the schema.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks that every schema-required field is present.
func (c SiteContent) Validate() error {
	err := contentValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, schemaPath(fe.Namespace()))
	}
	return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
}

// schemaPath drops the root type name from a validator namespace
// ("SiteContent.hero.cta" -> "hero.cta").
func schemaPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
