package structure

import (
	"fmt"

	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

type labels struct {
	toc, conclusion, thanks, key string
}

var labelsByLang = map[model.Language]labels{
	model.LangKorean:  {toc: "목차", conclusion: "결론", thanks: "감사합니다", key: "핵심: "},
	model.LangEnglish: {toc: "Table of Contents", conclusion: "Conclusion", thanks: "Thank You", key: "Key: "},
}

// Fallback builds the deck frame deterministically: title, optional table
// of contents, per-section slides, optional conclusion and a closing slide.
func Fallback(outline *model.Outline, opts Options) *model.SlideStructure {
	lang := model.NormalizeLanguage(opts.Language)
	l := labelsByLang[lang]

	subtitle := outline.Metadata.Subtitle
	if subtitle == "" {
		subtitle = outline.Metadata.MainTopic
	}
	slides := []model.Slide{{
		Type:          model.SlideTitle,
		Title:         outline.Metadata.Title,
		Subtitle:      subtitle,
		ContentBlocks: []model.ContentBlock{},
	}}

	if opts.IncludeTOC && len(outline.Sections) > 2 {
		titles := make([]string, 0, len(outline.Sections))
		for _, s := range outline.Sections {
			titles = append(titles, s.Title)
		}
		slides = append(slides, model.Slide{
			Type:  model.SlideTOC,
			Title: l.toc,
			ContentBlocks: []model.ContentBlock{{
				ID:       "block_toc",
				Type:     model.BlockNumbered,
				Content:  model.ListContent(titles),
				Position: model.PositionMain,
			}},
		})
	}

	for _, section := range outline.Sections {
		if section.Importance == model.ImportanceHigh && len(outline.Sections) > 3 {
			slides = append(slides, model.Slide{
				Type:          model.SlideSectionHeader,
				Title:         section.Title,
				ContentBlocks: []model.ContentBlock{},
			})
		}

		block := model.ContentBlock{Position: model.PositionMain}
		if len(section.BulletPoints) > 0 {
			block.Type = model.BlockBullets
			block.Content = model.BulletsContent(firstN(section.BulletPoints, maxBullets))
		} else {
			block.Type = model.BlockParagraph
			block.Content = model.TextContent(section.Content)
		}
		slides = append(slides, model.Slide{
			Type:          mapSuggestedType(section.SuggestedSlideType),
			Title:         section.Title,
			ContentBlocks: []model.ContentBlock{block},
		})
	}

	if opts.IncludeConclusion {
		var items []string
		if len(outline.Keywords) > 0 {
			for _, k := range firstN(outline.Keywords, 3) {
				items = append(items, l.key+k)
			}
		} else {
			items = []string{util.Truncate(outline.Summary, 100)}
		}
		slides = append(slides, model.Slide{
			Type:  model.SlideConclusion,
			Title: l.conclusion,
			ContentBlocks: []model.ContentBlock{{
				ID:       "block_conclusion",
				Type:     model.BlockBullets,
				Content:  model.BulletsContent(items),
				Position: model.PositionMain,
			}},
		})
	}

	slides = append(slides, model.Slide{
		Type:          model.SlideThankYou,
		Title:         l.thanks,
		ContentBlocks: []model.ContentBlock{},
	})

	number(slides)

	transitions := make([]model.FlowHint, 0, len(slides))
	for i := 0; i+1 < len(slides); i++ {
		transitions = append(transitions, model.FlowHint{
			FromSlideID:    slides[i].ID,
			ToSlideID:      slides[i+1].ID,
			ConnectionType: model.ConnectContinuation,
		})
	}

	return &model.SlideStructure{
		Presentation: model.PresentationMeta{
			Title:       outline.Metadata.Title,
			Subtitle:    outline.Metadata.Subtitle,
			TotalSlides: len(slides),
		},
		Slides: slides,
		Flow: model.Flow{
			Narrative:   outline.Summary,
			Transitions: transitions,
		},
	}
}

// number assigns ids, orders and missing block ids once the slide list is
// final.
func number(slides []model.Slide) {
	for i := range slides {
		n := i + 1
		slides[i].ID = fmt.Sprintf("slide_%d", n)
		slides[i].Order = n
		for j := range slides[i].ContentBlocks {
			if slides[i].ContentBlocks[j].ID == "" {
				slides[i].ContentBlocks[j].ID = fmt.Sprintf("block_%d_%d", n, j+1)
			}
		}
	}
}

func mapSuggestedType(suggested string) model.SlideType {
	switch t := model.SlideType(suggested); t {
	case model.SlideBulletPoints, model.SlideComparison, model.SlideChart, model.SlideTable, model.SlideQuote:
		return t
	}
	return model.SlideContent
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
