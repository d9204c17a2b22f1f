// Package assets provides embedded theme stylesheets for card rendering.
//
// Themes are shipped inside the binary via go:embed so the renderer works
// without any on-disk asset directory. Unknown theme names fall back to the
// default theme deterministically; only the default theme itself missing is
// a build error surfaced at load time.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed themes/*.css
var themes embed.FS

// DefaultThemeName is the built-in fallback theme.
const DefaultThemeName = "default"

// Sentinel errors for asset loading.
var (
	ErrThemeNotFound    = errors.New("assets: theme not found")
	ErrInvalidThemeName = errors.New("assets: invalid theme name")
)

// LoadTheme loads a theme stylesheet by name (without the .css extension).
// Returns ErrThemeNotFound if no such theme is embedded.
func LoadTheme(name string) (string, error) {
	if err := validateThemeName(name); err != nil {
		return "", err
	}

	content, err := themes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return string(content), nil
}

// ThemeCSS loads a theme stylesheet with fallback to the default theme.
// Unknown or invalid names degrade to the default; an empty string is
// returned only if the default theme itself is missing.
func ThemeCSS(name string) string {
	if css, err := LoadTheme(name); err == nil {
		return css
	}
	css, err := LoadTheme(DefaultThemeName)
	if err != nil {
		return ""
	}
	return css
}

// ThemeNames returns the names of all embedded themes, without extension.
func ThemeNames() []string {
	entries, err := themes.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	return names
}

// validateThemeName rejects names that could escape the themes directory.
func validateThemeName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidThemeName)
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidThemeName, name)
	}
	return nil
}
