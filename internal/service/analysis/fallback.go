package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

const (
	fallbackChunks     = 3
	chunkContentLimit  = 500
	paragraphLineLimit = 100
	summaryLimit       = 200
)

var blankLines = regexp.MustCompile(`\n\s*\n`)

// Fallback builds an outline from the document structure alone.
func Fallback(in Input) *model.Outline {
	c := in.Content
	lang := model.NormalizeLanguage(in.Language)

	var sections []model.Section
	if len(c.Headings) > 0 {
		sections = sectionsFromHeadings(c.Headings)
	} else {
		sections = sectionsFromParagraphs(c.RawText, lang)
	}

	for i, list := range c.Lists {
		if len(sections) == 0 {
			break
		}
		target := &sections[min(i, len(sections)-1)]
		items := list.Items
		if len(items) > maxBullets {
			items = items[:maxBullets]
		}
		merged := append(append([]string{}, target.BulletPoints...), items...)
		if len(merged) > maxBullets {
			merged = merged[:maxBullets]
		}
		target.BulletPoints = merged
	}

	if sections == nil {
		sections = []model.Section{}
	}
	mainTopic := ""
	if len(sections) > 0 {
		mainTopic = sections[0].Title
	}

	return &model.Outline{
		Metadata: model.OutlineMetadata{
			Title:     util.BaseName(in.FileName),
			MainTopic: mainTopic,
			Language:  lang,
		},
		Sections:              sections,
		Keywords:              []string{},
		Summary:               util.Truncate(c.RawText, summaryLimit),
		DataElements:          []model.DataElement{},
		RecommendedSlideCount: defaultSlideCount(len(sections)),
	}
}

func sectionsFromHeadings(headings []model.Heading) []model.Section {
	sections := make([]model.Section, 0, len(headings))
	for i, h := range headings {
		importance := model.ImportanceMedium
		if h.Level == 1 {
			importance = model.ImportanceHigh
		}
		sections = append(sections, model.Section{
			ID:                 sectionID(i + 1),
			Title:              h.Text,
			BulletPoints:       []string{},
			Importance:         importance,
			SuggestedSlideType: string(model.SlideBulletPoints),
		})
	}
	return sections
}

// sectionsFromParagraphs splits the paragraphs into up to three chunks of
// ceil(n/3) paragraphs each.
func sectionsFromParagraphs(text string, lang model.Language) []model.Section {
	var paragraphs []string
	for _, p := range blankLines.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return nil
	}

	size := (len(paragraphs) + fallbackChunks - 1) / fallbackChunks
	var sections []model.Section
	for i := 0; i < fallbackChunks && i*size < len(paragraphs); i++ {
		chunk := paragraphs[i*size : min((i+1)*size, len(paragraphs))]

		bullets := make([]string, 0, maxBullets)
		for _, p := range chunk[:min(maxBullets, len(chunk))] {
			bullets = append(bullets, util.Truncate(p, paragraphLineLimit))
		}

		importance := model.ImportanceMedium
		if i == 0 {
			importance = model.ImportanceHigh
		}
		sections = append(sections, model.Section{
			ID:                 sectionID(i + 1),
			Title:              sectionLabel(lang, i+1),
			Content:            util.Truncate(strings.Join(chunk, "\n\n"), chunkContentLimit),
			BulletPoints:       bullets,
			Importance:         importance,
			SuggestedSlideType: string(model.SlideBulletPoints),
		})
	}
	return sections
}

func sectionID(n int) string {
	return "section_" + strconv.Itoa(n)
}
