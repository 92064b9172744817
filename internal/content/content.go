// Package content holds the static tables the page sections render: copy,
// links, services, testimonials. The defaults are embedded; an operator can
// point the server at an external YAML file instead.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Anchor is a stable in-page section identifier that links scroll to.
type Anchor string

const (
	AnchorHero         Anchor = "hero"
	AnchorAbout        Anchor = "about"
	AnchorServices     Anchor = "services"
	AnchorTestimonials Anchor = "testimonials"
	AnchorContact      Anchor = "contact"
)

// Anchors lists every anchor in page order.
var Anchors = [...]Anchor{AnchorHero, AnchorAbout, AnchorServices, AnchorTestimonials, AnchorContact}

// DefaultScrollDuration is used when the content omits one.
const DefaultScrollDuration = 500 * time.Millisecond

// ErrInvalidContent wraps every parse and validation failure.
var ErrInvalidContent = errors.New("invalid site content")

//go:embed site.yaml
var defaultYAML []byte

type Site struct {
	Brand        Brand        `yaml:"brand" validate:"required"`
	Nav          Nav          `yaml:"nav" validate:"required"`
	Hero         Hero         `yaml:"hero" validate:"required"`
	About        About        `yaml:"about" validate:"required"`
	Services     Services     `yaml:"services" validate:"required"`
	Testimonials Testimonials `yaml:"testimonials" validate:"required"`
	Contact      Contact      `yaml:"contact" validate:"required"`
}

type Brand struct {
	Primary      string `yaml:"primary" validate:"required"`
	Secondary    string `yaml:"secondary" validate:"required"`
	Tagline      string `yaml:"tagline" validate:"required"`
	Blurb        string `yaml:"blurb"`
	Copyright    string `yaml:"copyright" validate:"required"`
	PortfolioURL string `yaml:"portfolio_url" validate:"omitempty,url"`
}

// Link scrolls to Anchor; Offset is the per-link row correction applied to
// the anchor's first line (negative scrolls further up).
type Link struct {
	Label  string `yaml:"label" validate:"required"`
	Anchor Anchor `yaml:"anchor" validate:"required,oneof=hero about services testimonials contact"`
	Offset int    `yaml:"offset" validate:"gte=-50,lte=50"`
}

type ExternalLink struct {
	Label string `yaml:"label" validate:"required"`
	URL   string `yaml:"url" validate:"required,url"`
}

type Nav struct {
	ScrollDuration time.Duration `yaml:"scroll_duration" validate:"gte=0"`
	Links          []Link        `yaml:"links" validate:"required,min=1,max=9,dive"`
	CTA            Link          `yaml:"cta" validate:"required"`
	MobileLinks    []Link        `yaml:"mobile_links" validate:"required,min=1,max=9,dive"`
	MobileCTA      Link          `yaml:"mobile_cta" validate:"required"`
}

type Hero struct {
	Badge        string       `yaml:"badge" validate:"required"`
	Headline     string       `yaml:"headline" validate:"required"`
	Highlight    string       `yaml:"highlight"`
	Pitch        string       `yaml:"pitch" validate:"required"`
	PrimaryCTA   Link         `yaml:"primary_cta" validate:"required"`
	SecondaryCTA ExternalLink `yaml:"secondary_cta"`
	MotionStrip  string       `yaml:"motion_strip"`
}

type Step struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description" validate:"required"`
}

type Work struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description" validate:"required"`
	Stats       string `yaml:"stats"`
}

type Value struct {
	Label string `yaml:"label" validate:"required"`
	Value string `yaml:"value" validate:"required"`
}

type About struct {
	Title         string  `yaml:"title" validate:"required"`
	Intro         string  `yaml:"intro"`
	Steps         []Step  `yaml:"steps" validate:"required,min=1,dive"`
	FeaturedTitle string  `yaml:"featured_title"`
	Featured      []Work  `yaml:"featured" validate:"dive"`
	WhyTitle      string  `yaml:"why_title"`
	WhyBody       string  `yaml:"why_body"`
	Values        []Value `yaml:"values" validate:"dive"`
}

type Service struct {
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description" validate:"required"`
	Features    []string `yaml:"features" validate:"dive,required"`
	Button      Link     `yaml:"button" validate:"required"`
}

type Services struct {
	Title string    `yaml:"title" validate:"required"`
	Intro string    `yaml:"intro"`
	Items []Service `yaml:"items" validate:"required,min=1,dive"`
}

type Testimonial struct {
	Name   string `yaml:"name" validate:"required"`
	Role   string `yaml:"role"`
	Quote  string `yaml:"quote" validate:"required"`
	Rating int    `yaml:"rating" validate:"gte=0,lte=5"`
}

type Testimonials struct {
	Title string        `yaml:"title" validate:"required"`
	Intro string        `yaml:"intro"`
	Items []Testimonial `yaml:"items" validate:"dive"`
}

type Contact struct {
	Title          string `yaml:"title" validate:"required"`
	Intro          string `yaml:"intro"`
	Email          string `yaml:"email" validate:"required,email"`
	Phone          string `yaml:"phone"`
	QuickLinks     []Link `yaml:"quick_links" validate:"dive"`
	PortfolioLabel string `yaml:"portfolio_label"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if site.Nav.ScrollDuration == 0 {
		site.Nav.ScrollDuration = DefaultScrollDuration
	}
	if err := validatorInstance().Struct(&site); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContent, describe(err))
	}
	return &site, nil
}

// Default returns the embedded site content.
func Default() *Site {
	site, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded site content: %v", err))
	}
	return site
}

// Load reads path, or returns the embedded default when path is empty.
func Load(path string) (*Site, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return Parse(data)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
