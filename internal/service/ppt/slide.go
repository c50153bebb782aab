package ppt

import (
	"fmt"
	"strings"

	"github.com/LuckyTW/ppt-creator/internal/model"
)

var bulletGlyphs = map[model.BulletStyle]rune{
	model.BulletCircle: '●',
	model.BulletSquare: '■',
	model.BulletArrow:  '▶',
	model.BulletDash:   '—',
}

const (
	tableHeaderSize = 14
	tableBodySize   = 12
	slideNumberSize = 10
	rowHeight       = 0.4
)

var tableRowFills = [2]string{"F8F9FA", "FFFFFF"}

// chartRef is a chart part referenced from a slide.
type chartRef struct {
	relID   string
	content *model.ChartContent
}

// slideWriter accumulates the shape tree of a single slide.
type slideWriter struct {
	theme   *model.Theme
	palette []string
	sb      strings.Builder
	nextID  int
	charts  []chartRef
}

func newSlideWriter(theme *model.Theme) *slideWriter {
	c := theme.Colors
	return &slideWriter{
		theme:  theme,
		nextID: 2,
		palette: []string{
			hexColor(c.Primary, "2563EB"),
			hexColor(c.Secondary, "3B82F6"),
			hexColor(c.Accent, "0EA5E9"),
			hexColor(c.Muted, "6B7280"),
		},
	}
}

func (w *slideWriter) id() int {
	id := w.nextID
	w.nextID++
	return id
}

func (w *slideWriter) primary() string   { return w.palette[0] }
func (w *slideWriter) secondary() string { return w.palette[1] }
func (w *slideWriter) muted() string     { return w.palette[3] }

func (w *slideWriter) textColor() string {
	return hexColor(w.theme.Colors.Text, "1F2937")
}

func (w *slideWriter) rect(b box, color string) {
	id := w.id()
	fmt.Fprintf(&w.sb, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Rectangle %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id, id)
	w.sb.WriteString(`<p:spPr>` + b.xfrm("a") + `<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	w.sb.WriteString(solidFill(color) + `<a:ln><a:noFill/></a:ln></p:spPr></p:sp>`)
}

// textBox writes a text shape whose body is the given paragraphs.
func (w *slideWriter) textBox(b box, anchor string, paragraphs []string) {
	id := w.id()
	fmt.Fprintf(&w.sb, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	w.sb.WriteString(`<p:spPr>` + b.xfrm("a") + `<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	fmt.Fprintf(&w.sb, `<p:txBody><a:bodyPr wrap="square" lIns="91440" tIns="45720" rIns="91440" bIns="45720" anchor="%s" rtlCol="0"><a:normAutofit/></a:bodyPr><a:lstStyle/>`, anchor)
	if len(paragraphs) == 0 {
		paragraphs = []string{`<a:p><a:endParaRPr lang="en-US" dirty="0"/></a:p>`}
	}
	for _, p := range paragraphs {
		w.sb.WriteString(p)
	}
	w.sb.WriteString(`</p:txBody></p:sp>`)
}

// text writes plain text, one paragraph per line.
func (w *slideWriter) text(b box, text, align, valign string, style runStyle) {
	var paras []string
	for _, line := range strings.Split(text, "\n") {
		paras = append(paras, fmt.Sprintf(`<a:p><a:pPr algn="%s"><a:buNone/></a:pPr>%s</a:p>`, alignAttr(align), style.run(line)))
	}
	w.textBox(b, anchorAttr(valign), paras)
}

func (w *slideWriter) bullets(b box, items []string, style runStyle) {
	glyph, ok := bulletGlyphs[w.theme.Styles.BulletStyle]
	if !ok {
		glyph = bulletGlyphs[model.BulletCircle]
	}
	paras := make([]string, 0, len(items))
	for _, item := range items {
		paras = append(paras, fmt.Sprintf(
			`<a:p><a:pPr marL="342900" indent="-342900" algn="l"><a:spcAft><a:spcPts val="1200"/></a:spcAft>`+
				`<a:buClr><a:srgbClr val="%s"/></a:buClr><a:buFont typeface="Arial"/><a:buChar char="%s"/></a:pPr>%s</a:p>`,
			w.primary(), esc(string(glyph)), style.run(item)))
	}
	w.textBox(b, "t", paras)
}

func (w *slideWriter) numbered(b box, items []string, style runStyle) {
	paras := make([]string, 0, len(items))
	for _, item := range items {
		paras = append(paras, fmt.Sprintf(
			`<a:p><a:pPr marL="457200" indent="-457200" algn="l"><a:spcAft><a:spcPts val="1200"/></a:spcAft>`+
				`<a:buFont typeface="+mj-lt"/><a:buAutoNum type="arabicPeriod"/></a:pPr>%s</a:p>`,
			style.run(item)))
	}
	w.textBox(b, "t", paras)
}

func (w *slideWriter) placeholder(b box, label string) {
	w.text(b, label, "center", "middle", runStyle{
		size:  w.theme.Styles.BodySize,
		face:  w.theme.Fonts.Body,
		color: w.muted(),
	})
}

func (w *slideWriter) table(b box, t *model.TableContent) {
	cols := len(t.Headers)
	colW := emu(b.w) / int64(cols)
	rows := 1 + len(t.Rows)
	h := rowHeight * float64(rows)

	id := w.id()
	fmt.Fprintf(&w.sb, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/>`, id, id)
	w.sb.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`)
	w.sb.WriteString(box{b.x, b.y, b.w, h}.xfrm("p"))
	w.sb.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">`)
	w.sb.WriteString(`<a:tbl><a:tblPr firstRow="1" bandRow="1"/><a:tblGrid>`)
	for i := 0; i < cols; i++ {
		fmt.Fprintf(&w.sb, `<a:gridCol w="%d"/>`, colW)
	}
	w.sb.WriteString(`</a:tblGrid>`)

	header := runStyle{size: tableHeaderSize, face: w.theme.Fonts.Body, color: white, bold: true}
	w.tableRow(t.Headers, header, w.primary())

	body := runStyle{size: tableBodySize, face: w.theme.Fonts.Body, color: w.textColor()}
	for i, row := range t.Rows {
		cells := make([]string, cols)
		copy(cells, row)
		w.tableRow(cells, body, tableRowFills[i%2])
	}
	w.sb.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func (w *slideWriter) tableRow(cells []string, style runStyle, fill string) {
	fmt.Fprintf(&w.sb, `<a:tr h="%d">`, emu(rowHeight))
	border := solidFill(w.muted())
	for _, cell := range cells {
		w.sb.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>`)
		w.sb.WriteString(`<a:p><a:pPr algn="ctr"/>` + style.run(cell) + `</a:p></a:txBody>`)
		w.sb.WriteString(`<a:tcPr anchor="ctr">`)
		for _, side := range []string{"lnL", "lnR", "lnT", "lnB"} {
			fmt.Fprintf(&w.sb, `<a:%s w="6350">%s</a:%s>`, side, border, side)
		}
		w.sb.WriteString(solidFill(fill) + `</a:tcPr></a:tc>`)
	}
	w.sb.WriteString(`</a:tr>`)
}

// chart writes the graphic frame and records the chart part it points at.
// Relationship ids start at rId2; rId1 is the layout.
func (w *slideWriter) chart(b box, c *model.ChartContent) {
	relID := fmt.Sprintf("rId%d", len(w.charts)+2)
	w.charts = append(w.charts, chartRef{relID: relID, content: c})

	id := w.id()
	fmt.Fprintf(&w.sb, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Chart %d"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`, id, id)
	w.sb.WriteString(b.xfrm("p"))
	fmt.Fprintf(&w.sb, `<a:graphic><a:graphicData uri="%s"><c:chart xmlns:c="%s" r:id="%s"/></a:graphicData></a:graphic></p:graphicFrame>`, nsC, nsC, relID)
}

// element renders a body element. The element type picks charts, tables
// and images; text elements dispatch on the payload kind.
func (w *slideWriter) element(e model.VisualElement) {
	b := box{e.Position.X, e.Position.Y, e.Size.W, e.Size.H}
	style := runStyle{
		size:   e.Style.FontSize,
		face:   e.Style.FontFace,
		color:  hexColor(e.Style.Color, w.textColor()),
		bold:   e.Style.Bold,
		italic: e.Style.Italic,
	}
	if style.size == 0 {
		style.size = w.theme.Styles.BodySize
	}
	if style.face == "" {
		style.face = w.theme.Fonts.Body
	}

	switch e.Type {
	case model.ElementChart:
		if e.Content.Kind == model.KindChart && e.Content.Chart.Valid() {
			w.chart(b, e.Content.Chart)
		} else {
			w.placeholder(b, "[Chart]")
		}
		return
	case model.ElementTable:
		if e.Content.Kind == model.KindTable && e.Content.Table.Valid() {
			w.table(b, e.Content.Table)
		} else {
			w.placeholder(b, "[Table]")
		}
		return
	case model.ElementImage:
		w.placeholder(b, "[Image]")
		return
	case model.ElementShape:
		fill := w.primary()
		if e.Style.Fill != nil {
			fill = hexColor(e.Style.Fill.Color, fill)
		}
		w.rect(b, fill)
		return
	}

	c := e.Content
	switch c.Kind {
	case model.KindBullets:
		w.bullets(b, c.Strings(), style)
	case model.KindList:
		w.numbered(b, c.Items, style)
	case model.KindText:
		w.text(b, c.Text, e.Style.Align, e.Style.VAlign, style)
	case model.KindTable:
		if c.Table.Valid() {
			w.table(b, c.Table)
		} else {
			w.placeholder(b, "[Table]")
		}
	case model.KindChart:
		if c.Chart.Valid() {
			w.chart(b, c.Chart)
		} else {
			w.placeholder(b, "[Chart]")
		}
	}
}

func (w *slideWriter) slideNumber(n, total int) {
	w.text(box{8.5, 5.2, 1, 0.3}, fmt.Sprintf("%d / %d", n, total), "right", "top", runStyle{
		size:  slideNumberSize,
		face:  w.theme.Fonts.Body,
		color: w.muted(),
	})
}

// elementsByRole splits a slide's elements into its title, subtitle and
// body elements.
func elementsByRole(elements []model.VisualElement) (title, subtitle *model.VisualElement, body []model.VisualElement) {
	for i := range elements {
		e := &elements[i]
		switch {
		case e.Role == model.RoleTitle && title == nil:
			title = e
		case e.Role == model.RoleSubtitle && subtitle == nil:
			subtitle = e
		default:
			body = append(body, *e)
		}
	}
	return title, subtitle, body
}

// renderSlide returns the slide part XML and the charts it references.
func renderSlide(sv model.SlideVisual, theme *model.Theme, n, total int) (string, []chartRef) {
	w := newSlideWriter(theme)
	title, subtitle, body := elementsByRole(sv.Elements)

	var bg string
	switch sv.SlideType {
	case model.SlideTitle:
		bg = w.primary()
		w.rect(box{0, 4.5, 10, 1.125}, darken(w.primary(), 20))
		if title != nil {
			w.text(box{0.5, 1.8, 9, 1.5}, title.Content.Text, "center", "middle",
				runStyle{size: 44, face: theme.Fonts.Heading, color: white, bold: true})
		}
		if subtitle != nil {
			w.text(box{0.5, 3.5, 9, 0.8}, subtitle.Content.Text, "center", "middle",
				runStyle{size: 24, face: theme.Fonts.Body, color: white, italic: true})
		}
		w.rect(box{3, 3.3, 4, 0.05}, white)
		for _, e := range body {
			w.element(e)
		}

	case model.SlideSectionHeader:
		bg = w.secondary()
		w.rect(box{0, 0, 0.15, 5.625}, w.primary())
		if title != nil {
			w.text(box{0.8, 2, 8.5, 1.5}, title.Content.Text, "left", "middle",
				runStyle{size: 40, face: theme.Fonts.Heading, color: white, bold: true})
		}
		w.rect(box{0.8, 3.6, 2, 0.08}, white)

	case model.SlideThankYou:
		bg = w.primary()
		w.rect(box{3.5, 1.8, 3, 0.05}, white)
		w.rect(box{3.5, 3.7, 3, 0.05}, white)
		if title != nil {
			w.text(box{0.5, 2, 9, 1.5}, title.Content.Text, "center", "middle",
				runStyle{size: 48, face: theme.Fonts.Heading, color: white, bold: true})
		}

	default:
		bg = hexColor(theme.Colors.Background, white)
		if sv.Background != nil && sv.Background.Color != "" {
			bg = hexColor(sv.Background.Color, bg)
		}
		w.rect(box{0, 0, 10, 0.8}, w.primary())
		w.rect(box{0, 5.5, 10, 0.05}, w.primary())
		if title != nil {
			w.text(box{0.5, 0.15, 9, 0.5}, title.Content.Text, "left", "middle",
				runStyle{size: 22, face: theme.Fonts.Heading, color: white, bold: true})
		}
		for _, e := range body {
			w.element(e)
		}
	}

	if !sv.SlideType.Decorative() {
		w.slideNumber(n, total)
	}

	var sb strings.Builder
	sb.WriteString(xmlHeader)
	fmt.Fprintf(&sb, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:cSld>`, nsA, nsR, nsP)
	sb.WriteString(`<p:bg><p:bgPr>` + solidFill(bg) + `<a:effectLst/></p:bgPr></p:bg>`)
	sb.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sb.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	sb.WriteString(w.sb.String())
	sb.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return sb.String(), w.charts
}
