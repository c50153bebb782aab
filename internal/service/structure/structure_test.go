package structure

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/llm"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

func outlineWith(n int, importance model.Importance) *model.Outline {
	o := &model.Outline{
		Metadata: model.OutlineMetadata{Title: "Deck", MainTopic: "Topic"},
		Summary:  "A summary of the whole document.",
	}
	for i := 1; i <= n; i++ {
		o.Sections = append(o.Sections, model.Section{
			ID:                 fmt.Sprintf("section_%d", i),
			Title:              fmt.Sprintf("Part %d", i),
			BulletPoints:       []string{"one", "two", "three", "four", "five", "six"},
			Importance:         importance,
			SuggestedSlideType: "bullet_points",
		})
	}
	return o
}

func countType(slides []model.Slide, t model.SlideType) int {
	n := 0
	for _, s := range slides {
		if s.Type == t {
			n++
		}
	}
	return n
}

func TestFallbackWithTOCAndFiveSections(t *testing.T) {
	outline := outlineWith(5, model.ImportanceMedium)
	opts := Options{IncludeTOC: true, Language: model.LangEnglish}

	result, err := New(nil, llm.Options{}, nil).Design(context.Background(), outline, opts)
	require.NoError(t, err)

	slides := result.Slides
	assert.Equal(t, 1, countType(slides, model.SlideTOC))
	assert.Equal(t, 1, countType(slides, model.SlideTitle))
	assert.Equal(t, 1, countType(slides, model.SlideThankYou))
	assert.Equal(t, 5, countType(slides, model.SlideBulletPoints))
	assert.Equal(t, 8, len(slides))
	assert.Equal(t, 8, result.Presentation.TotalSlides)

	// section order preserved
	for i := 0; i < 5; i++ {
		assert.Equal(t, fmt.Sprintf("Part %d", i+1), slides[i+2].Title)
		assert.Len(t, slides[i+2].ContentBlocks[0].Content.Strings(), 5)
	}

	require.Len(t, result.Flow.Transitions, 7)
	for i, tr := range result.Flow.Transitions {
		assert.Equal(t, slides[i].ID, tr.FromSlideID)
		assert.Equal(t, slides[i+1].ID, tr.ToSlideID)
		assert.Equal(t, model.ConnectContinuation, tr.ConnectionType)
	}
}

func TestFallbackSectionHeadersAndConclusion(t *testing.T) {
	outline := outlineWith(4, model.ImportanceHigh)
	outline.Keywords = []string{"alpha", "beta", "gamma", "delta"}

	result := Fallback(outline, DefaultOptions(model.LangKorean, 0))

	assert.Equal(t, 4, countType(result.Slides, model.SlideSectionHeader))
	conclusion := result.Slides[len(result.Slides)-2]
	assert.Equal(t, model.SlideConclusion, conclusion.Type)
	assert.Equal(t, "결론", conclusion.Title)
	assert.Equal(t, []string{"핵심: alpha", "핵심: beta", "핵심: gamma"}, conclusion.ContentBlocks[0].Content.Strings())
	assert.Equal(t, "감사합니다", result.Slides[len(result.Slides)-1].Title)
}

func TestFallbackIdsAndOrderAreUnique(t *testing.T) {
	result := Fallback(outlineWith(6, model.ImportanceHigh), DefaultOptions(model.LangEnglish, 0))

	ids := map[string]bool{}
	for i, s := range result.Slides {
		assert.Equal(t, i+1, s.Order)
		assert.False(t, ids[s.ID], "duplicate id %s", s.ID)
		ids[s.ID] = true
	}
}

func TestFallbackKeepsEverySectionWithTarget(t *testing.T) {
	result := Fallback(outlineWith(5, model.ImportanceMedium), DefaultOptions(model.LangEnglish, 5))

	var bodies []string
	for _, s := range result.Slides {
		if s.Type == model.SlideBulletPoints {
			bodies = append(bodies, s.Title)
		}
	}
	assert.Equal(t, []string{"Part 1", "Part 2", "Part 3", "Part 4", "Part 5"}, bodies)

	require.Equal(t, model.SlideTOC, result.Slides[1].Type)
	assert.Equal(t, bodies, result.Slides[1].ContentBlocks[0].Content.Items)
	assert.Equal(t, len(result.Slides), result.Presentation.TotalSlides)
}

func TestFallbackParagraphWhenNoBullets(t *testing.T) {
	outline := &model.Outline{
		Metadata: model.OutlineMetadata{Title: "Deck"},
		Sections: []model.Section{{Title: "Only", Content: "Body text", SuggestedSlideType: "timeline"}},
	}
	result := Fallback(outline, Options{Language: model.LangEnglish})

	require.Len(t, result.Slides, 3)
	body := result.Slides[1]
	assert.Equal(t, model.SlideContent, body.Type)
	assert.Equal(t, model.BlockParagraph, body.ContentBlocks[0].Type)
	assert.Equal(t, "Body text", body.ContentBlocks[0].Content.Text)
}

func TestDesignNormalizesAIReply(t *testing.T) {
	gen := llm.GeneratorFunc(func(context.Context, string, llm.Options) (string, error) {
		return `Here is the plan: {
			"presentation": {"title": ""},
			"slides": [
				{"id": "s", "order": 5, "type": "title", "title": "Hello"},
				{"id": "s", "order": 5, "type": "timeline", "title": "Dup",
				 "contentBlocks": [
					{"type": "chart", "content": {"type": "bar", "labels": ["a"], "datasets": [{"name": "x", "values": [1]}]}, "position": "left"},
					{"type": "weird", "content": ["p", "q"], "position": "center"}
				 ]}
			],
			"flow": {"narrative": "n", "transitions": [{"fromSlideId": "s", "toSlideId": "slide_2", "connectionType": "jump"}]}
		}`, nil
	})

	result, err := New(gen, llm.Options{}, nil).Design(context.Background(), outlineWith(2, model.ImportanceLow), Options{})
	require.NoError(t, err)

	require.Len(t, result.Slides, 2)
	assert.Equal(t, "Deck", result.Presentation.Title)
	assert.Equal(t, "s", result.Slides[0].ID)
	assert.Equal(t, "slide_2", result.Slides[1].ID)
	assert.Equal(t, 1, result.Slides[0].Order)
	assert.Equal(t, 2, result.Slides[1].Order)
	assert.Equal(t, model.SlideContent, result.Slides[1].Type)

	blocks := result.Slides[1].ContentBlocks
	require.Len(t, blocks, 2)
	assert.Equal(t, "block_1", blocks[0].ID)
	assert.Equal(t, model.KindChart, blocks[0].Content.Kind)
	assert.Equal(t, model.PositionLeft, blocks[0].Position)
	assert.Equal(t, model.BlockParagraph, blocks[1].Type)
	assert.Equal(t, model.PositionMain, blocks[1].Position)
	assert.Equal(t, []string{"p", "q"}, blocks[1].Content.Items)

	assert.Equal(t, model.ConnectContinuation, result.Flow.Transitions[0].ConnectionType)
}

func TestDesignFallsBackWhenReplyHasNoSlides(t *testing.T) {
	gen := llm.GeneratorFunc(func(_ context.Context, _ string, opts llm.Options) (string, error) {
		assert.Equal(t, 8192, opts.MaxOutputTokens)
		return `{"slides": []}`, nil
	})
	result, err := New(gen, llm.Options{}, nil).Design(context.Background(), outlineWith(1, model.ImportanceLow), Options{})
	require.NoError(t, err)
	assert.Equal(t, model.SlideTitle, result.Slides[0].Type)
}

func TestDesignNilOutlineIsHardFailure(t *testing.T) {
	_, err := New(nil, llm.Options{}, nil).Design(context.Background(), nil, Options{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStructure, errors.Code(err))
}
