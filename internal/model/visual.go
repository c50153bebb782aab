package model

type ElementType string

const (
	ElementText  ElementType = "text"
	ElementShape ElementType = "shape"
	ElementImage ElementType = "image"
	ElementChart ElementType = "chart"
	ElementTable ElementType = "table"
)

// ElementRole tells the builder which placeholder an element stands in for.
type ElementRole string

const (
	RoleTitle    ElementRole = "title"
	RoleSubtitle ElementRole = "subtitle"
	RoleBody     ElementRole = "body"
)

// Point is a position in inches from the top-left corner of the slide.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is in inches.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Fill struct {
	Color string `json:"color"`
}

type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type ElementStyle struct {
	FontSize float64 `json:"fontSize,omitempty"`
	FontFace string  `json:"fontFace,omitempty"`
	Color    string  `json:"color,omitempty"`
	Bold     bool    `json:"bold,omitempty"`
	Italic   bool    `json:"italic,omitempty"`
	Align    string  `json:"align,omitempty"`
	VAlign   string  `json:"valign,omitempty"`
	Fill     *Fill   `json:"fill,omitempty"`
	Line     *Line   `json:"line,omitempty"`
}

type VisualElement struct {
	ID       string       `json:"id"`
	Type     ElementType  `json:"type"`
	Role     ElementRole  `json:"role"`
	Position Point        `json:"position"`
	Size     Size         `json:"size"`
	Style    ElementStyle `json:"style"`
	Content  BlockContent `json:"content"`
}

type Background struct {
	Color string `json:"color,omitempty"`
	Image string `json:"image,omitempty"`
}

// SlideVisual is the placed version of one slide.
type SlideVisual struct {
	SlideID    string          `json:"slideId"`
	SlideType  SlideType       `json:"slideType"`
	Background *Background     `json:"background,omitempty"`
	Elements   []VisualElement `json:"elements"`
}

type VisualSpec struct {
	Slides []SlideVisual `json:"slides"`
	Theme  Theme         `json:"appliedTheme"`
}
