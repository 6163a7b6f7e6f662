package config

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
	CardBg        string `toml:"card_bg"`
}

// Nord
var darkTheme = Theme{
	TextPrimary:   "#D8DEE9",
	TextSecondary: "#81A1C1",
	TextFaint:     "#4C566A",
	Accent:        "#88C0D0",
	Success:       "#A3BE8C",
	Error:         "#BF616A",
	Highlight:     "#8FBCBB",
	Warning:       "#D08770",
	BgPrimary:     "#2E3440",
	BgSecondary:   "#3B4252",
	CardBg:        "#434C5E",
}

// Nord snow storm
var lightTheme = Theme{
	TextPrimary:   "#2E3440",
	TextSecondary: "#5E81AC",
	TextFaint:     "#9AA5B8",
	Accent:        "#5E81AC",
	Success:       "#4F7A3A",
	Error:         "#BF616A",
	Highlight:     "#3B7F8C",
	Warning:       "#C0632F",
	BgPrimary:     "#ECEFF4",
	BgSecondary:   "#E5E9F0",
	CardBg:        "#D8DEE9",
}

// ThemeNames lists the built-in palettes in toggle order
var ThemeNames = []string{"dark", "light"}

// Palette returns the named built-in palette with any non-empty
// theme_colors entries laid over it.
func (c *Config) Palette(name string) Theme {
	base := darkTheme
	if name == "light" {
		base = lightTheme
	}
	return base.merge(c.Theme)
}

// NextTheme returns the palette name after current
func NextTheme(current string) string {
	if current == "dark" {
		return "light"
	}
	return "dark"
}

func (t Theme) merge(o Theme) Theme {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&t.TextPrimary, o.TextPrimary)
	set(&t.TextSecondary, o.TextSecondary)
	set(&t.TextFaint, o.TextFaint)
	set(&t.Accent, o.Accent)
	set(&t.Success, o.Success)
	set(&t.Error, o.Error)
	set(&t.Highlight, o.Highlight)
	set(&t.Warning, o.Warning)
	set(&t.BgPrimary, o.BgPrimary)
	set(&t.BgSecondary, o.BgSecondary)
	set(&t.CardBg, o.CardBg)
	return t
}
