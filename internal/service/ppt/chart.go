package ppt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuckyTW/ppt-creator/internal/model"
)

const maxSeries = 6

const (
	catAxisID = 111111111
	valAxisID = 222222222
)

// chartXML renders a chart part with literal (embedded) category and value
// caches, so no workbook is needed.
func chartXML(c *model.ChartContent, palette []string) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	fmt.Fprintf(&sb, `<c:chartSpace xmlns:c="%s" xmlns:a="%s" xmlns:r="%s">`, nsC, nsA, nsR)
	sb.WriteString(`<c:roundedCorners val="0"/><c:chart>`)

	if c.Title != "" {
		sb.WriteString(`<c:title><c:tx><c:rich><a:bodyPr/><a:lstStyle/><a:p>`)
		sb.WriteString(`<a:r><a:t>` + esc(c.Title) + `</a:t></a:r>`)
		sb.WriteString(`</a:p></c:rich></c:tx><c:overlay val="0"/></c:title>`)
		sb.WriteString(`<c:autoTitleDeleted val="0"/>`)
	} else {
		sb.WriteString(`<c:autoTitleDeleted val="1"/>`)
	}

	datasets := c.Datasets
	if len(datasets) > maxSeries {
		datasets = datasets[:maxSeries]
	}

	sb.WriteString(`<c:plotArea><c:layout/>`)
	switch c.Type {
	case model.ChartPie, model.ChartDoughnut:
		tag := "pieChart"
		if c.Type == model.ChartDoughnut {
			tag = "doughnutChart"
		}
		fmt.Fprintf(&sb, `<c:%s><c:varyColors val="1"/>`, tag)
		// a pie shows one series
		sb.WriteString(series(0, datasets[0], c.Labels, "", ""))
		sb.WriteString(`<c:firstSliceAng val="0"/>`)
		if c.Type == model.ChartDoughnut {
			sb.WriteString(`<c:holeSize val="50"/>`)
		}
		fmt.Fprintf(&sb, `</c:%s>`, tag)

	case model.ChartLine:
		sb.WriteString(`<c:lineChart><c:grouping val="standard"/><c:varyColors val="0"/>`)
		for i, ds := range datasets {
			sb.WriteString(series(i, ds, c.Labels, lineProps(palette[i%len(palette)]), `<c:marker><c:symbol val="circle"/></c:marker>`))
		}
		sb.WriteString(`<c:marker val="1"/>`)
		sb.WriteString(axisIDs())
		sb.WriteString(`</c:lineChart>`)
		sb.WriteString(axes())

	case model.ChartArea:
		sb.WriteString(`<c:areaChart><c:grouping val="standard"/><c:varyColors val="0"/>`)
		for i, ds := range datasets {
			sb.WriteString(series(i, ds, c.Labels, fillProps(palette[i%len(palette)]), ""))
		}
		sb.WriteString(axisIDs())
		sb.WriteString(`</c:areaChart>`)
		sb.WriteString(axes())

	default:
		sb.WriteString(`<c:barChart><c:barDir val="col"/><c:grouping val="clustered"/><c:varyColors val="0"/>`)
		for i, ds := range datasets {
			sb.WriteString(series(i, ds, c.Labels, fillProps(palette[i%len(palette)]), `<c:invertIfNegative val="0"/>`))
		}
		sb.WriteString(`<c:gapWidth val="150"/>`)
		sb.WriteString(axisIDs())
		sb.WriteString(`</c:barChart>`)
		sb.WriteString(axes())
	}
	sb.WriteString(`</c:plotArea>`)

	sb.WriteString(`<c:legend><c:legendPos val="b"/><c:overlay val="0"/></c:legend>`)
	sb.WriteString(`<c:plotVisOnly val="1"/><c:dispBlanksAs val="gap"/>`)
	sb.WriteString(`</c:chart></c:chartSpace>`)
	return sb.String()
}

func fillProps(color string) string {
	return `<c:spPr>` + solidFill(color) + `</c:spPr>`
}

func lineProps(color string) string {
	return `<c:spPr><a:ln w="28575">` + solidFill(color) + `</a:ln></c:spPr>`
}

// series writes one c:ser. extra goes right after spPr, where bar and line
// series take their type-specific elements.
func series(i int, ds model.ChartDataset, labels []string, spPr, extra string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<c:ser><c:idx val="%d"/><c:order val="%d"/>`, i, i)
	name := ds.Name
	if name == "" {
		name = fmt.Sprintf("Series %d", i+1)
	}
	sb.WriteString(`<c:tx><c:v>` + esc(name) + `</c:v></c:tx>`)
	sb.WriteString(spPr)
	sb.WriteString(extra)

	fmt.Fprintf(&sb, `<c:cat><c:strLit><c:ptCount val="%d"/>`, len(labels))
	for j, l := range labels {
		fmt.Fprintf(&sb, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, j, esc(l))
	}
	sb.WriteString(`</c:strLit></c:cat>`)

	fmt.Fprintf(&sb, `<c:val><c:numLit><c:formatCode>General</c:formatCode><c:ptCount val="%d"/>`, len(ds.Values))
	for j, v := range ds.Values {
		fmt.Fprintf(&sb, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, j, strconv.FormatFloat(v, 'f', -1, 64))
	}
	sb.WriteString(`</c:numLit></c:val>`)
	sb.WriteString(`</c:ser>`)
	return sb.String()
}

func axisIDs() string {
	return fmt.Sprintf(`<c:axId val="%d"/><c:axId val="%d"/>`, catAxisID, valAxisID)
}

func axes() string {
	return fmt.Sprintf(`<c:catAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling>`+
		`<c:delete val="0"/><c:axPos val="b"/><c:numFmt formatCode="General" sourceLinked="0"/>`+
		`<c:tickLblPos val="nextTo"/><c:crossAx val="%d"/><c:crosses val="autoZero"/>`+
		`<c:auto val="1"/><c:lblAlgn val="ctr"/><c:lblOffset val="100"/></c:catAx>`+
		`<c:valAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling>`+
		`<c:delete val="0"/><c:axPos val="l"/><c:majorGridlines/><c:numFmt formatCode="General" sourceLinked="0"/>`+
		`<c:tickLblPos val="nextTo"/><c:crossAx val="%d"/><c:crosses val="autoZero"/>`+
		`<c:crossBetween val="between"/></c:valAx>`,
		catAxisID, valAxisID, valAxisID, catAxisID)
}
