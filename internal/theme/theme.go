package theme

import (
	"errors"
	"fmt"
	"reflect"
)

// Mode identifies the active visual mode.
type Mode int

const (
	Light Mode = iota
	Dark
)

// ErrUnknownMode is returned when a mode string is neither "light" nor "dark".
var ErrUnknownMode = errors.New("unknown theme mode")

// String returns the persisted form of the mode.
func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the complementary mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether m is Dark.
func (m Mode) IsDark() bool { return m == Dark }

// ParseMode accepts exactly "dark" or "light". Anything else, including
// differently cased values, is reported as not ok.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "dark":
		return Dark, true
	case "light":
		return Light, true
	default:
		return Light, false
	}
}

// ModeFromString is ParseMode for user input, returning ErrUnknownMode.
func ModeFromString(s string) (Mode, error) {
	m, ok := ParseMode(s)
	if !ok {
		return Light, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Tokens is the named table of style attribute values for one visual mode.
//
// Both tables are package-level values handed out by pointer; callers must
// treat them as read-only.
type Tokens struct {
	Name string `token:"name"`

	Background    string `token:"background"`
	Text          string `token:"text"`
	TextSecondary string `token:"textSecondary"`
	TextMuted     string `token:"textMuted"`

	NavBg     string `token:"navBg"`
	NavBorder string `token:"navBorder"`
	NavText   string `token:"navText"`

	Primary   string `token:"primary"`
	Secondary string `token:"secondary"`
	Accent    string `token:"accent"`
	CardBg    string `token:"cardBg"`

	ButtonPrimaryBg      string `token:"buttonPrimaryBg"`
	ButtonPrimaryFg      string `token:"buttonPrimaryFg"`
	ButtonPrimaryHover   string `token:"buttonPrimaryHover"`
	ButtonSecondary      string `token:"buttonSecondary"`
	ButtonSecondaryHover string `token:"buttonSecondaryHover"`

	Border string `token:"border"`
	Shadow string `token:"shadow"`

	BadgeBg   string `token:"badgeBg"`
	BadgeText string `token:"badgeText"`

	GradientFrom string `token:"gradientFrom"`
	GradientVia  string `token:"gradientVia"`
	GradientTo   string `token:"gradientTo"`

	MobileMenuBg string `token:"mobileMenuBg"`
}

// Attribute is one named token value.
type Attribute struct {
	Name  string
	Value string
}

// Attributes lists every token in declaration order.
func (t *Tokens) Attributes() []Attribute {
	v := reflect.ValueOf(t).Elem()
	typ := v.Type()
	out := make([]Attribute, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := field.Tag.Get("token")
		if name == "" {
			name = field.Name
		}
		out = append(out, Attribute{Name: name, Value: v.Field(i).String()})
	}
	return out
}

// Light theme, purple based.
var lightTokens = Tokens{
	Name:                 "light",
	Background:           "#FFFFFF",
	Text:                 "#111827",
	TextSecondary:        "#374151",
	TextMuted:            "#4B5563",
	NavBg:                "#FFFFFF",
	NavBorder:            "#E5E7EB",
	NavText:              "#1F2937",
	Primary:              "#9333EA",
	Secondary:            "#DB2777",
	Accent:               "#6B7280",
	CardBg:               "#FFFFFF",
	ButtonPrimaryBg:      "#5631C0",
	ButtonPrimaryFg:      "#FFFFFF",
	ButtonPrimaryHover:   "#4B2BB3",
	ButtonSecondary:      "#5631C0",
	ButtonSecondaryHover: "#EEEAF9",
	Border:               "#E5E7EB",
	Shadow:               "#D1D5DB",
	BadgeBg:              "#F3E8FF",
	BadgeText:            "#9333EA",
	GradientFrom:         "#A855F7",
	GradientVia:          "#EC4899",
	GradientTo:           "#3B82F6",
	MobileMenuBg:         "#FFFFFF",
}

// Dark theme, purple based.
var darkTokens = Tokens{
	Name:                 "dark",
	Background:           "#111827",
	Text:                 "#FFFFFF",
	TextSecondary:        "#D1D5DB",
	TextMuted:            "#9CA3AF",
	NavBg:                "#111827",
	NavBorder:            "#1F2937",
	NavText:              "#FFFFFF",
	Primary:              "#C084FC",
	Secondary:            "#F472B6",
	Accent:               "#9CA3AF",
	CardBg:               "#111827",
	ButtonPrimaryBg:      "#5631C0",
	ButtonPrimaryFg:      "#FFFFFF",
	ButtonPrimaryHover:   "#4B2BB3",
	ButtonSecondary:      "#5631C0",
	ButtonSecondaryHover: "#1E1A33",
	Border:               "#374151",
	Shadow:               "#000000",
	BadgeBg:              "#2A1B3D",
	BadgeText:            "#C084FC",
	GradientFrom:         "#9333EA",
	GradientVia:          "#DB2777",
	GradientTo:           "#2563EB",
	MobileMenuBg:         "#111827",
}

// LightTokens returns the light token table. Every call returns the same pointer.
func LightTokens() *Tokens { return &lightTokens }

// DarkTokens returns the dark token table. Every call returns the same pointer.
func DarkTokens() *Tokens { return &darkTokens }

// TokensFor returns the token table for mode.
func TokensFor(mode Mode) *Tokens {
	if mode == Dark {
		return &darkTokens
	}
	return &lightTokens
}
