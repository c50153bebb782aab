package ppt

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/LuckyTW/ppt-creator/internal/model"
)

const (
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctChart        = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	ctCore         = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtended     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	relBase        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relCore        = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relPackageNS   = "http://schemas.openxmlformats.org/package/2006/relationships"
	contentTypesNS = "http://schemas.openxmlformats.org/package/2006/content-types"

	masterID      = 2147483648
	layoutID      = 2147483649
	firstSlideID  = 256
	firstSlideRel = 6
	tableStyleID  = "{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"
	creator       = "PPT Creator"
)

type part struct {
	name string
	body string
}

type relationship struct {
	id, typ, target string
}

func relsXML(rels []relationship) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	fmt.Fprintf(&sb, `<Relationships xmlns="%s">`, relPackageNS)
	for _, r := range rels {
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.id, r.typ, r.target)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// deck collects every part of the package before it is zipped.
type deck struct {
	title  string
	theme  *model.Theme
	now    time.Time
	parts  []part
	slides int
	charts int
}

func (d *deck) add(name, body string) {
	d.parts = append(d.parts, part{name: name, body: body})
}

func (d *deck) build(spec *model.VisualSpec) {
	d.slides = len(spec.Slides)
	for i, sv := range spec.Slides {
		n := i + 1
		body, charts := renderSlide(sv, d.theme, n, d.slides)
		d.add(fmt.Sprintf("ppt/slides/slide%d.xml", n), body)

		rels := []relationship{{"rId1", relBase + "slideLayout", "../slideLayouts/slideLayout1.xml"}}
		palette := newSlideWriter(d.theme).palette
		for _, ch := range charts {
			d.charts++
			d.add(fmt.Sprintf("ppt/charts/chart%d.xml", d.charts), chartXML(ch.content, palette))
			rels = append(rels, relationship{ch.relID, relBase + "chart", fmt.Sprintf("../charts/chart%d.xml", d.charts)})
		}
		d.add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relsXML(rels))
	}

	d.add("_rels/.rels", relsXML([]relationship{
		{"rId1", relBase + "officeDocument", "ppt/presentation.xml"},
		{"rId2", relCore, "docProps/core.xml"},
		{"rId3", relBase + "extended-properties", "docProps/app.xml"},
	}))
	d.add("docProps/core.xml", d.coreProps())
	d.add("docProps/app.xml", d.appProps())
	d.add("ppt/presentation.xml", d.presentation())
	d.add("ppt/_rels/presentation.xml.rels", d.presentationRels())
	d.add("ppt/slideMasters/slideMaster1.xml", slideMasterXML())
	d.add("ppt/slideMasters/_rels/slideMaster1.xml.rels", relsXML([]relationship{
		{"rId1", relBase + "slideLayout", "../slideLayouts/slideLayout1.xml"},
		{"rId2", relBase + "theme", "../theme/theme1.xml"},
	}))
	d.add("ppt/slideLayouts/slideLayout1.xml", slideLayoutXML())
	d.add("ppt/slideLayouts/_rels/slideLayout1.xml.rels", relsXML([]relationship{
		{"rId1", relBase + "slideMaster", "../slideMasters/slideMaster1.xml"},
	}))
	d.add("ppt/theme/theme1.xml", themeXML(d.theme))
	d.add("ppt/presProps.xml", xmlHeader+fmt.Sprintf(`<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`, nsA, nsR, nsP))
	d.add("ppt/viewProps.xml", xmlHeader+fmt.Sprintf(
		`<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`, nsA, nsR, nsP))
	d.add("ppt/tableStyles.xml", xmlHeader+fmt.Sprintf(`<a:tblStyleLst xmlns:a="%s" def="%s"/>`, nsA, tableStyleID))

	// Readers sniff the content types part first.
	d.parts = append([]part{{name: "[Content_Types].xml", body: d.contentTypes()}}, d.parts...)
}

func (d *deck) contentTypes() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	fmt.Fprintf(&sb, `<Types xmlns="%s">`, contentTypesNS)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	override := func(name, ct string) {
		fmt.Fprintf(&sb, `<Override PartName="/%s" ContentType="%s"/>`, name, ct)
	}
	override("ppt/presentation.xml", ctPresentation)
	override("ppt/slideMasters/slideMaster1.xml", ctSlideMaster)
	override("ppt/slideLayouts/slideLayout1.xml", ctSlideLayout)
	override("ppt/theme/theme1.xml", ctTheme)
	override("ppt/presProps.xml", ctPresProps)
	override("ppt/viewProps.xml", ctViewProps)
	override("ppt/tableStyles.xml", ctTableStyles)
	override("docProps/core.xml", ctCore)
	override("docProps/app.xml", ctExtended)
	for i := 1; i <= d.slides; i++ {
		override(fmt.Sprintf("ppt/slides/slide%d.xml", i), ctSlide)
	}
	for i := 1; i <= d.charts; i++ {
		override(fmt.Sprintf("ppt/charts/chart%d.xml", i), ctChart)
	}
	sb.WriteString(`</Types>`)
	return sb.String()
}

func (d *deck) coreProps() string {
	ts := d.now.UTC().Format(time.RFC3339)
	return xmlHeader + fmt.Sprintf(
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" `+
			`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" `+
			`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`+
			`<dc:title>%s</dc:title><dc:creator>%s</dc:creator><cp:lastModifiedBy>%s</cp:lastModifiedBy>`+
			`<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`+
			`<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified></cp:coreProperties>`,
		esc(d.title), creator, creator, ts, ts)
}

func (d *deck) appProps() string {
	return xmlHeader + fmt.Sprintf(
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`+
			`<Application>%s</Application><Slides>%d</Slides></Properties>`, creator, d.slides)
}

func (d *deck) presentation() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	fmt.Fprintf(&sb, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">`, nsA, nsR, nsP)
	fmt.Fprintf(&sb, `<p:sldMasterIdLst><p:sldMasterId id="%d" r:id="rId1"/></p:sldMasterIdLst>`, masterID)
	if d.slides > 0 {
		sb.WriteString(`<p:sldIdLst>`)
		for i := 0; i < d.slides; i++ {
			fmt.Fprintf(&sb, `<p:sldId id="%d" r:id="rId%d"/>`, firstSlideID+i, firstSlideRel+i)
		}
		sb.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&sb, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="6858000" cy="9144000"/>`, slideWidthEMU, slideHeightEMU)
	sb.WriteString(`<p:defaultTextStyle><a:defPPr><a:defRPr lang="en-US"/></a:defPPr></p:defaultTextStyle></p:presentation>`)
	return sb.String()
}

func (d *deck) presentationRels() string {
	rels := []relationship{
		{"rId1", relBase + "slideMaster", "slideMasters/slideMaster1.xml"},
		{"rId2", relBase + "theme", "theme/theme1.xml"},
		{"rId3", relBase + "presProps", "presProps.xml"},
		{"rId4", relBase + "viewProps", "viewProps.xml"},
		{"rId5", relBase + "tableStyles", "tableStyles.xml"},
	}
	for i := 0; i < d.slides; i++ {
		rels = append(rels, relationship{
			fmt.Sprintf("rId%d", firstSlideRel+i),
			relBase + "slide",
			fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return relsXML(rels)
}

const emptySpTree = `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree>`

func slideMasterXML() string {
	return xmlHeader + fmt.Sprintf(`<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP) +
		`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>` + emptySpTree + `</p:cSld>` +
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" ` +
		`accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
		fmt.Sprintf(`<p:sldLayoutIdLst><p:sldLayoutId id="%d" r:id="rId1"/></p:sldLayoutIdLst>`, layoutID) +
		`<p:txStyles><p:titleStyle><a:lvl1pPr><a:defRPr/></a:lvl1pPr></p:titleStyle>` +
		`<p:bodyStyle><a:lvl1pPr><a:defRPr/></a:lvl1pPr></p:bodyStyle>` +
		`<p:otherStyle><a:lvl1pPr><a:defRPr/></a:lvl1pPr></p:otherStyle></p:txStyles></p:sldMaster>`
}

func slideLayoutXML() string {
	return xmlHeader + fmt.Sprintf(`<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="blank" preserve="1">`, nsA, nsR, nsP) +
		`<p:cSld name="Blank">` + emptySpTree + `</p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
}

func themeXML(t *model.Theme) string {
	c := t.Colors
	primary := hexColor(c.Primary, "2563EB")
	secondary := hexColor(c.Secondary, "3B82F6")
	accent := hexColor(c.Accent, "0EA5E9")
	muted := hexColor(c.Muted, "6B7280")
	text := hexColor(c.Text, "1F2937")
	background := hexColor(c.Background, white)

	clr := func(name, val string) string {
		return fmt.Sprintf(`<a:%s><a:srgbClr val="%s"/></a:%s>`, name, val, name)
	}
	font := func(face string) string {
		if face == "" {
			face = "Arial"
		}
		return fmt.Sprintf(`<a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/>`, esc(face))
	}
	fill := `<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`

	var sb strings.Builder
	sb.WriteString(xmlHeader)
	fmt.Fprintf(&sb, `<a:theme xmlns:a="%s" name="%s"><a:themeElements>`, nsA, esc(t.Name))
	fmt.Fprintf(&sb, `<a:clrScheme name="%s">`, esc(t.Name))
	sb.WriteString(clr("dk1", text) + clr("lt1", white) + clr("dk2", text) + clr("lt2", background))
	sb.WriteString(clr("accent1", primary) + clr("accent2", secondary) + clr("accent3", accent))
	sb.WriteString(clr("accent4", muted) + clr("accent5", primary) + clr("accent6", secondary))
	sb.WriteString(clr("hlink", primary) + clr("folHlink", muted))
	sb.WriteString(`</a:clrScheme>`)
	fmt.Fprintf(&sb, `<a:fontScheme name="%s"><a:majorFont>%s</a:majorFont><a:minorFont>%s</a:minorFont></a:fontScheme>`,
		esc(t.Name), font(t.Fonts.Heading), font(t.Fonts.Body))
	sb.WriteString(`<a:fmtScheme name="Office"><a:fillStyleLst>` + fill + fill + fill + `</a:fillStyleLst><a:lnStyleLst>`)
	for _, w := range []int{6350, 12700, 19050} {
		fmt.Fprintf(&sb, `<a:ln w="%d">%s</a:ln>`, w, fill)
	}
	sb.WriteString(`</a:lnStyleLst><a:effectStyleLst>`)
	for i := 0; i < 3; i++ {
		sb.WriteString(`<a:effectStyle><a:effectLst/></a:effectStyle>`)
	}
	sb.WriteString(`</a:effectStyleLst><a:bgFillStyleLst>` + fill + fill + fill + `</a:bgFillStyleLst></a:fmtScheme>`)
	sb.WriteString(`</a:themeElements></a:theme>`)
	return sb.String()
}

// writeZip stores parts in the order they were added.
func (d *deck) writeZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: d.now,
		})
		if err != nil {
			return err
		}
		if _, err := io.WriteString(f, p.body); err != nil {
			return err
		}
	}
	return zw.Close()
}
