package model

type SlideType string

const (
	SlideTitle         SlideType = "title"
	SlideTOC           SlideType = "toc"
	SlideSectionHeader SlideType = "section_header"
	SlideContent       SlideType = "content"
	SlideBulletPoints  SlideType = "bullet_points"
	SlideComparison    SlideType = "comparison"
	SlideChart         SlideType = "chart"
	SlideTable         SlideType = "table"
	SlideQuote         SlideType = "quote"
	SlideConclusion    SlideType = "conclusion"
	SlideThankYou      SlideType = "thank_you"
)

var slideTypes = map[SlideType]bool{
	SlideTitle: true, SlideTOC: true, SlideSectionHeader: true,
	SlideContent: true, SlideBulletPoints: true, SlideComparison: true,
	SlideChart: true, SlideTable: true, SlideQuote: true,
	SlideConclusion: true, SlideThankYou: true,
}

func (t SlideType) Valid() bool { return slideTypes[t] }

// Decorative slides carry no page number.
func (t SlideType) Decorative() bool {
	return t == SlideTitle || t == SlideSectionHeader || t == SlideThankYou
}

type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockBullets   BlockType = "bullets"
	BlockNumbered  BlockType = "numbered"
	BlockTable     BlockType = "table"
	BlockChart     BlockType = "chart"
	BlockQuote     BlockType = "quote"
	BlockImage     BlockType = "image"
)

var blockTypes = map[BlockType]bool{
	BlockHeading: true, BlockParagraph: true, BlockBullets: true,
	BlockNumbered: true, BlockTable: true, BlockChart: true,
	BlockQuote: true, BlockImage: true,
}

func (t BlockType) Valid() bool { return blockTypes[t] }

type BlockPosition string

const (
	PositionMain   BlockPosition = "main"
	PositionLeft   BlockPosition = "left"
	PositionRight  BlockPosition = "right"
	PositionTop    BlockPosition = "top"
	PositionBottom BlockPosition = "bottom"
)

func (p BlockPosition) Valid() bool {
	switch p {
	case PositionMain, PositionLeft, PositionRight, PositionTop, PositionBottom:
		return true
	}
	return false
}

type TransitionType string

const (
	TransitionFade TransitionType = "fade"
	TransitionPush TransitionType = "push"
	TransitionWipe TransitionType = "wipe"
	TransitionNone TransitionType = "none"
)

type ConnectionType string

const (
	ConnectContinuation ConnectionType = "continuation"
	ConnectContrast     ConnectionType = "contrast"
	ConnectExample      ConnectionType = "example"
	ConnectConclusion   ConnectionType = "conclusion"
)

type ContentBlock struct {
	ID       string        `json:"id"`
	Type     BlockType     `json:"type"`
	Content  BlockContent  `json:"content"`
	Position BlockPosition `json:"position"`
}

type Slide struct {
	ID             string         `json:"id"`
	Order          int            `json:"order"`
	Type           SlideType      `json:"type"`
	Title          string         `json:"title"`
	Subtitle       string         `json:"subtitle,omitempty"`
	ContentBlocks  []ContentBlock `json:"contentBlocks"`
	SpeakerNotes   string         `json:"speakerNotes,omitempty"`
	TransitionType TransitionType `json:"transitionType,omitempty"`
}

type PresentationMeta struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	TotalSlides int    `json:"totalSlides"`
}

type FlowHint struct {
	FromSlideID    string         `json:"fromSlideId"`
	ToSlideID      string         `json:"toSlideId"`
	ConnectionType ConnectionType `json:"connectionType"`
}

type Flow struct {
	Narrative   string     `json:"narrative"`
	Transitions []FlowHint `json:"transitions"`
}

// SlideStructure is the structure design result: the ordered slide list
// and the narrative flow between slides.
type SlideStructure struct {
	Presentation PresentationMeta `json:"presentation"`
	Slides       []Slide          `json:"slides"`
	Flow         Flow             `json:"flow"`
}
