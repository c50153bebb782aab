// Package theme holds the fixed catalog of presentation themes.
package theme

import "github.com/LuckyTW/ppt-creator/internal/model"

const DefaultID = "modern-blue"

var defaultFonts = model.ThemeFonts{Heading: "Arial", Body: "Arial"}

func styles(bullet model.BulletStyle) model.ThemeStyles {
	return model.ThemeStyles{HeadingSize: 36, SubheadingSize: 24, BodySize: 18, BulletStyle: bullet}
}

var catalog = []model.Theme{
	{
		ID:          "modern-blue",
		Name:        "Modern Blue",
		Description: "Clean, professional blue theme",
		Colors: model.ThemeColors{
			Primary: "#2563EB", Secondary: "#3B82F6", Background: "#FFFFFF",
			Text: "#1F2937", Accent: "#0EA5E9", Muted: "#6B7280",
		},
		Fonts:  defaultFonts,
		Styles: styles(model.BulletCircle),
	},
	{
		ID:          "corporate-dark",
		Name:        "Corporate Dark",
		Description: "Premium dark theme",
		Colors: model.ThemeColors{
			Primary: "#F59E0B", Secondary: "#FBBF24", Background: "#1F2937",
			Text: "#F9FAFB", Accent: "#F97316", Muted: "#9CA3AF",
		},
		Fonts:  defaultFonts,
		Styles: styles(model.BulletSquare),
	},
	{
		ID:          "minimal-light",
		Name:        "Minimal Light",
		Description: "Simple, bright theme",
		Colors: model.ThemeColors{
			Primary: "#374151", Secondary: "#6B7280", Background: "#FAFAFA",
			Text: "#111827", Accent: "#4B5563", Muted: "#9CA3AF",
		},
		Fonts:  defaultFonts,
		Styles: styles(model.BulletDash),
	},
	{
		ID:          "professional-green",
		Name:        "Professional Green",
		Description: "Trustworthy green theme",
		Colors: model.ThemeColors{
			Primary: "#059669", Secondary: "#10B981", Background: "#FFFFFF",
			Text: "#1F2937", Accent: "#14B8A6", Muted: "#6B7280",
		},
		Fonts:  defaultFonts,
		Styles: styles(model.BulletArrow),
	},
}

// Get returns the theme with the given id, falling back to the default
// theme for unknown ids. The returned value is a copy.
func Get(id string) model.Theme {
	for _, t := range catalog {
		if t.ID == id {
			return t
		}
	}
	return catalog[0]
}

func Exists(id string) bool {
	for _, t := range catalog {
		if t.ID == id {
			return true
		}
	}
	return false
}

func All() []model.Theme {
	out := make([]model.Theme, len(catalog))
	copy(out, catalog)
	return out
}

func Previews() []model.ThemePreview {
	out := make([]model.ThemePreview, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, model.ThemePreview{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			PreviewColors: model.PreviewColors{
				Primary:    t.Colors.Primary,
				Secondary:  t.Colors.Secondary,
				Background: t.Colors.Background,
			},
		})
	}
	return out
}
