package visual

import "github.com/LuckyTW/ppt-creator/internal/model"

// Canvas size in inches (16:9).
const (
	SlideWidth  = 10.0
	SlideHeight = 5.625

	margin   = 0.5
	contentY = 1.2
	contentW = SlideWidth - 2*margin
	contentH = SlideHeight - contentY - margin
)

type area struct {
	position model.BlockPosition
	x, y     float64
	w, h     float64
}

type layout struct {
	titlePos  model.Point
	titleSize model.Size
	areas     []area
}

var (
	headerTitle = model.Point{X: margin, Y: margin}
	headerSize  = model.Size{W: contentW, H: 0.7}
	mainArea    = area{position: model.PositionMain, x: margin, y: contentY, w: contentW, h: contentH}
	halfW       = contentW/2 - 0.2
)

var layouts = map[model.SlideType]layout{
	model.SlideTitle: {
		titlePos:  model.Point{X: 0.5, Y: 2},
		titleSize: model.Size{W: 9, H: 1.5},
		areas:     []area{{position: model.PositionMain, x: 0.5, y: 3.5, w: 9, h: 1}},
	},
	model.SlideTOC:           {titlePos: headerTitle, titleSize: headerSize, areas: []area{mainArea}},
	model.SlideSectionHeader: {titlePos: model.Point{X: 0.5, Y: 2.2}, titleSize: model.Size{W: 9, H: 1.2}},
	model.SlideContent:       {titlePos: headerTitle, titleSize: headerSize, areas: []area{mainArea}},
	model.SlideBulletPoints:  {titlePos: headerTitle, titleSize: headerSize, areas: []area{mainArea}},
	model.SlideComparison: {
		titlePos:  headerTitle,
		titleSize: headerSize,
		areas: []area{
			{position: model.PositionLeft, x: margin, y: contentY, w: halfW, h: contentH},
			{position: model.PositionRight, x: margin + contentW/2 + 0.2, y: contentY, w: halfW, h: contentH},
		},
	},
	model.SlideChart: {
		titlePos:  headerTitle,
		titleSize: headerSize,
		areas:     []area{{position: model.PositionMain, x: 1, y: contentY, w: 8, h: 3.5}},
	},
	model.SlideTable: {titlePos: headerTitle, titleSize: headerSize, areas: []area{mainArea}},
	model.SlideQuote: {
		titlePos:  headerTitle,
		titleSize: headerSize,
		areas:     []area{{position: model.PositionMain, x: 1.5, y: 1.8, w: 7, h: 2.5}},
	},
	model.SlideConclusion: {titlePos: headerTitle, titleSize: headerSize, areas: []area{mainArea}},
	model.SlideThankYou:   {titlePos: model.Point{X: 0.5, Y: 2.2}, titleSize: model.Size{W: 9, H: 1.2}},
}

func layoutFor(t model.SlideType) layout {
	if l, ok := layouts[t]; ok {
		return l
	}
	return layouts[model.SlideContent]
}

// findArea returns the area tagged p, else the first area of the layout.
func (l layout) findArea(p model.BlockPosition) (area, bool) {
	for _, a := range l.areas {
		if a.position == p {
			return a, true
		}
	}
	if len(l.areas) > 0 {
		return l.areas[0], true
	}
	return area{}, false
}
