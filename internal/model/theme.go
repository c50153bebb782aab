package model

type BulletStyle string

const (
	BulletCircle BulletStyle = "circle"
	BulletSquare BulletStyle = "square"
	BulletArrow  BulletStyle = "arrow"
	BulletDash   BulletStyle = "dash"
)

// ThemeColors are hex values with a leading '#'.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
	Muted      string `json:"muted"`
}

type ThemeFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ThemeStyles sizes are in points.
type ThemeStyles struct {
	HeadingSize    float64     `json:"headingSize"`
	SubheadingSize float64     `json:"subheadingSize"`
	BodySize       float64     `json:"bodySize"`
	BulletStyle    BulletStyle `json:"bulletStyle"`
}

type Theme struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Colors      ThemeColors `json:"colors"`
	Fonts       ThemeFonts  `json:"fonts"`
	Styles      ThemeStyles `json:"styles"`
}

type PreviewColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
}

type ThemePreview struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	PreviewColors PreviewColors `json:"preview_colors"`
}
