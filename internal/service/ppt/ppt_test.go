package ppt

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/structure"
	"github.com/LuckyTW/ppt-creator/internal/service/theme"
	"github.com/LuckyTW/ppt-creator/internal/service/visual"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

func titleEl(slideID, text string) model.VisualElement {
	return model.VisualElement{
		ID:       slideID + "_title",
		Type:     model.ElementText,
		Role:     model.RoleTitle,
		Position: model.Point{X: 0.5, Y: 0.3},
		Size:     model.Size{W: 9, H: 0.8},
		Content:  model.TextContent(text),
	}
}

func bodyEl(id string, typ model.ElementType, content model.BlockContent) model.VisualElement {
	return model.VisualElement{
		ID:       id,
		Type:     typ,
		Role:     model.RoleBody,
		Position: model.Point{X: 0.5, Y: 1.3},
		Size:     model.Size{W: 9, H: 3.8},
		Content:  content,
	}
}

func sampleSpec() *model.VisualSpec {
	return &model.VisualSpec{
		Theme: theme.Get("modern-blue"),
		Slides: []model.SlideVisual{
			{
				SlideID:   "slide_1",
				SlideType: model.SlideTitle,
				Elements: []model.VisualElement{
					titleEl("slide_1", "Quarterly <Review>"),
					{ID: "slide_1_subtitle", Type: model.ElementText, Role: model.RoleSubtitle, Content: model.TextContent("Q3 & Q4")},
				},
			},
			{
				SlideID:   "slide_2",
				SlideType: model.SlideBulletPoints,
				Elements: []model.VisualElement{
					titleEl("slide_2", "Highlights"),
					bodyEl("block_2_1", model.ElementText, model.BulletsContent([]string{"Revenue up", "Costs down"})),
				},
			},
			{
				SlideID:   "slide_3",
				SlideType: model.SlideContent,
				Elements: []model.VisualElement{
					titleEl("slide_3", "Numbers"),
					bodyEl("block_3_1", model.ElementChart, model.ChartBlock(model.ChartContent{
						Type:     model.ChartBar,
						Labels:   []string{"Q1", "Q2"},
						Datasets: []model.ChartDataset{{Name: "Sales", Values: []float64{10, 20}}},
					})),
					bodyEl("block_3_2", model.ElementTable, model.TableBlock(model.TableContent{
						Headers: []string{"Region", "Total"},
						Rows:    [][]string{{"North", "10"}, {"South"}},
					})),
					bodyEl("block_3_3", model.ElementChart, model.ChartBlock(model.ChartContent{Type: model.ChartPie})),
					bodyEl("block_3_4", model.ElementTable, model.TableBlock(model.TableContent{})),
				},
			},
		},
	}
}

func openDeck(t *testing.T, file *model.BuiltFile) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(file.Buffer), int64(len(file.Buffer)))
	require.NoError(t, err)
	require.NotEmpty(t, zr.File)
	assert.Equal(t, "[Content_Types].xml", zr.File[0].Name)

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = string(data)
	}
	return parts
}

func assertWellFormed(t *testing.T, name, body string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(body))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, "part %s is not well-formed", name)
	}
}

func TestBuildWritesEverySlide(t *testing.T) {
	file, err := New(nil).Build(context.Background(), sampleSpec(), "notes/report.md")
	require.NoError(t, err)

	assert.Equal(t, "report_presentation.pptx", file.FileName)
	assert.Equal(t, model.PPTXMimeType, file.MimeType)
	assert.Equal(t, len(file.Buffer), file.Size)
	assert.Equal(t, 3, file.Stats.TotalSlides)

	parts := openDeck(t, file)
	slides := 0
	for name, body := range parts {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			slides++
		}
		assertWellFormed(t, name, body)
	}
	assert.Equal(t, 3, slides)

	pres := parts["ppt/presentation.xml"]
	assert.Contains(t, pres, `<p:sldId id="256" r:id="rId6"/>`)
	assert.Contains(t, pres, `<p:sldId id="258" r:id="rId8"/>`)
	assert.Contains(t, pres, `cx="9144000" cy="5143500"`)
	assert.Contains(t, parts["docProps/app.xml"], "<Slides>3</Slides>")
	assert.Contains(t, parts["docProps/core.xml"], "<dc:title>report</dc:title>")
}

func TestSlideDecorations(t *testing.T) {
	file, err := New(nil).Build(context.Background(), sampleSpec(), "report.md")
	require.NoError(t, err)
	parts := openDeck(t, file)

	cover := parts["ppt/slides/slide1.xml"]
	assert.Contains(t, cover, "Quarterly &lt;Review&gt;")
	assert.Contains(t, cover, "Q3 &amp; Q4")
	assert.NotContains(t, cover, " / 3")

	bullets := parts["ppt/slides/slide2.xml"]
	assert.Contains(t, bullets, `<a:buChar char="●"/>`)
	assert.Contains(t, bullets, "2 / 3")

	assert.Contains(t, parts["ppt/slides/slide3.xml"], "3 / 3")
}

func TestChartsAndTables(t *testing.T) {
	file, err := New(nil).Build(context.Background(), sampleSpec(), "report.md")
	require.NoError(t, err)
	parts := openDeck(t, file)

	chart, ok := parts["ppt/charts/chart1.xml"]
	require.True(t, ok)
	assert.Contains(t, chart, "<c:barChart>")
	assert.Contains(t, chart, "<c:numLit>")
	assert.Contains(t, chart, "Sales")
	_, extra := parts["ppt/charts/chart2.xml"]
	assert.False(t, extra)

	assert.Contains(t, parts["ppt/slides/_rels/slide3.xml.rels"], `Target="../charts/chart1.xml"`)
	assert.Contains(t, parts["[Content_Types].xml"], `PartName="/ppt/charts/chart1.xml"`)

	slide := parts["ppt/slides/slide3.xml"]
	assert.Contains(t, slide, `r:id="rId2"`)
	assert.Contains(t, slide, "[Chart]")
	assert.Contains(t, slide, "[Table]")
	// header cells carry the primary fill
	assert.Contains(t, slide, `<a:solidFill><a:srgbClr val="2563EB"/></a:solidFill></a:tcPr>`)
	assert.Contains(t, slide, `val="F8F9FA"`)
	// the short row is padded to the header width
	assert.Equal(t, 6, strings.Count(slide, "<a:tc>"))
}

func TestBuildFromPipelineStages(t *testing.T) {
	outline := &model.Outline{
		Metadata: model.OutlineMetadata{Title: "Roadmap", MainTopic: "Plans", Language: model.LangEnglish},
		Summary:  "Where we are going",
		Sections: []model.Section{
			{ID: "section_1", Title: "Now", Content: "Current state", BulletPoints: []string{"a", "b"}, Importance: model.ImportanceHigh},
			{ID: "section_2", Title: "Next", Content: "Upcoming work", Importance: model.ImportanceMedium},
			{ID: "section_3", Title: "Later", Content: "Long term", BulletPoints: []string{"c"}, Importance: model.ImportanceLow},
		},
		Keywords: []string{"plan"},
	}
	st := structure.Fallback(outline, structure.DefaultOptions(model.LangEnglish, 0))
	th := theme.Get("professional-green")
	spec, err := visual.Design(st, &th)
	require.NoError(t, err)

	file, err := New(nil).Build(context.Background(), spec, "roadmap.txt")
	require.NoError(t, err)
	assert.Equal(t, len(st.Slides), file.Stats.TotalSlides)

	parts := openDeck(t, file)
	for name, body := range parts {
		assertWellFormed(t, name, body)
	}
	assert.Contains(t, parts["ppt/theme/theme1.xml"], `<a:accent1><a:srgbClr val="059669"/></a:accent1>`)
}

func TestBuildRejectsNilSpec(t *testing.T) {
	_, err := New(nil).Build(context.Background(), nil, "x.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePPTBuild))
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "notes_presentation.pptx", OutputName("notes.md"))
	assert.Equal(t, "a.b_presentation.pptx", OutputName("dir/a.b.txt"))
	assert.Equal(t, "presentation.pptx", OutputName(""))
}

func TestDarken(t *testing.T) {
	assert.Equal(t, "000000", darken("#0A0A0A", 20))
	assert.Equal(t, "CCCCCC", darken("FFFFFF", 20))
}
