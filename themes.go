package md2card

import "github.com/alnah/go-md2card/internal/assets"

// Theme name constants.
const (
	ThemeDefault          = "default"
	ThemePlayfulGeometric = "playful-geometric"
	ThemeNeoBrutalism     = "neo-brutalism"
	ThemeBotanical        = "botanical"
	ThemeProfessional     = "professional"
	ThemeRetro            = "retro"
	ThemeTerminal         = "terminal"
	ThemeSketch           = "sketch"
)

// Themes lists all built-in theme names.
func Themes() []string {
	return []string{
		ThemeDefault,
		ThemePlayfulGeometric,
		ThemeNeoBrutalism,
		ThemeBotanical,
		ThemeProfessional,
		ThemeRetro,
		ThemeTerminal,
		ThemeSketch,
	}
}

// IsValidTheme reports whether name is a built-in theme.
func IsValidTheme(name string) bool {
	_, ok := themePalette[name]
	return ok
}

// ResolveTheme maps any theme name to a built-in one.
// Unknown names fall back to the default theme, never an error.
func ResolveTheme(name string) string {
	if IsValidTheme(name) {
		return name
	}
	return ThemeDefault
}

// themeColors holds the gradient table entries for one theme.
type themeColors struct {
	cardBackground  string // card page background gradient
	coverBackground string // cover page background gradient
	titleGradient   string // cover title text-fill gradient
}

// themePalette is the immutable per-theme color table, loaded once.
// Stylesheet details live in internal/assets; these gradients are shared
// between the page shell (which the stylesheets don't control) and covers.
var themePalette = map[string]themeColors{
	ThemeDefault: {
		cardBackground:  "linear-gradient(180deg, #f3f3f3 0%, #f9f9f9 100%)",
		coverBackground: "linear-gradient(180deg, #f3f3f3 0%, #f9f9f9 100%)",
		titleGradient:   "linear-gradient(180deg, #111827 0%, #4B5563 100%)",
	},
	ThemePlayfulGeometric: {
		cardBackground:  "linear-gradient(135deg, #8B5CF6 0%, #F472B6 100%)",
		coverBackground: "linear-gradient(180deg, #8B5CF6 0%, #F472B6 100%)",
		titleGradient:   "linear-gradient(180deg, #7C3AED 0%, #F472B6 100%)",
	},
	ThemeNeoBrutalism: {
		cardBackground:  "linear-gradient(135deg, #FF4757 0%, #FECA57 100%)",
		coverBackground: "linear-gradient(180deg, #FF4757 0%, #FECA57 100%)",
		titleGradient:   "linear-gradient(180deg, #000000 0%, #FF4757 100%)",
	},
	ThemeBotanical: {
		cardBackground:  "linear-gradient(135deg, #4A7C59 0%, #8FBC8F 100%)",
		coverBackground: "linear-gradient(180deg, #4A7C59 0%, #8FBC8F 100%)",
		titleGradient:   "linear-gradient(180deg, #1F2937 0%, #4A7C59 100%)",
	},
	ThemeProfessional: {
		cardBackground:  "linear-gradient(135deg, #2563EB 0%, #3B82F6 100%)",
		coverBackground: "linear-gradient(180deg, #2563EB 0%, #3B82F6 100%)",
		titleGradient:   "linear-gradient(180deg, #1E3A8A 0%, #2563EB 100%)",
	},
	ThemeRetro: {
		cardBackground:  "linear-gradient(135deg, #D35400 0%, #F39C12 100%)",
		coverBackground: "linear-gradient(180deg, #D35400 0%, #F39C12 100%)",
		titleGradient:   "linear-gradient(180deg, #8B4513 0%, #D35400 100%)",
	},
	ThemeTerminal: {
		cardBackground:  "linear-gradient(135deg, #0D1117 0%, #161B22 100%)",
		coverBackground: "linear-gradient(180deg, #0D1117 0%, #21262D 100%)",
		titleGradient:   "linear-gradient(180deg, #39D353 0%, #58A6FF 100%)",
	},
	ThemeSketch: {
		cardBackground:  "linear-gradient(135deg, #555555 0%, #888888 100%)",
		coverBackground: "linear-gradient(180deg, #555555 0%, #999999 100%)",
		titleGradient:   "linear-gradient(180deg, #111827 0%, #6B7280 100%)",
	},
}

// paletteFor returns the color table entry for a theme, with fallback.
func paletteFor(theme string) themeColors {
	return themePalette[ResolveTheme(theme)]
}

// themeStylesheet loads the embedded stylesheet for a theme, with fallback.
func themeStylesheet(theme string) string {
	return assets.ThemeCSS(ResolveTheme(theme))
}
