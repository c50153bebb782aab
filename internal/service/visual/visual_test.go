package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/theme"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

func TestComparisonBlocksDoNotOverlap(t *testing.T) {
	th := theme.Get("modern-blue")
	structure := &model.SlideStructure{Slides: []model.Slide{{
		ID:    "slide_1",
		Type:  model.SlideComparison,
		Title: "Before and after",
		ContentBlocks: []model.ContentBlock{
			{ID: "b1", Type: model.BlockBullets, Content: model.BulletsContent([]string{"old"}), Position: model.PositionLeft},
			{ID: "b2", Type: model.BlockBullets, Content: model.BulletsContent([]string{"new"}), Position: model.PositionRight},
		},
	}}}

	spec, err := Design(structure, &th)
	require.NoError(t, err)

	elements := spec.Slides[0].Elements
	require.Len(t, elements, 3)
	left, right := elements[1], elements[2]
	assert.Equal(t, 0.5, left.Position.X)
	assert.InDelta(t, 4.3, left.Size.W, 1e-9)
	assert.InDelta(t, 5.2, right.Position.X, 1e-9)
	assert.Less(t, left.Position.X+left.Size.W, right.Position.X)
}

func TestTitleSlideStyles(t *testing.T) {
	th := theme.Get("corporate-dark")
	structure := &model.SlideStructure{Slides: []model.Slide{
		{ID: "slide_1", Type: model.SlideTitle, Title: "Deck", Subtitle: "Sub"},
		{ID: "slide_2", Type: model.SlideContent, Title: "Body", Subtitle: "ignored"},
	}}

	spec, err := Design(structure, &th)
	require.NoError(t, err)

	first := spec.Slides[0].Elements
	require.Len(t, first, 2)
	assert.Equal(t, "slide_1_title", first[0].ID)
	assert.Equal(t, model.RoleTitle, first[0].Role)
	assert.Equal(t, 36.0, first[0].Style.FontSize)
	assert.Equal(t, "center", first[0].Style.Align)
	assert.Equal(t, th.Fonts.Heading, first[0].Style.FontFace)
	assert.Equal(t, th.Colors.Text, first[0].Style.Color)
	assert.Equal(t, "slide_1_subtitle", first[1].ID)
	assert.Equal(t, th.Colors.Muted, first[1].Style.Color)

	second := spec.Slides[1].Elements
	require.Len(t, second, 1)
	assert.Equal(t, 24.0, second[0].Style.FontSize)
	assert.Equal(t, "left", second[0].Style.Align)
	assert.Equal(t, th.Colors.Background, spec.Slides[1].Background.Color)
}

func TestBlocksMapToElementTypes(t *testing.T) {
	th := theme.Get("")
	structure := &model.SlideStructure{Slides: []model.Slide{{
		ID:   "s",
		Type: model.SlideType("unknown"),
		ContentBlocks: []model.ContentBlock{
			{ID: "c", Type: model.BlockChart, Position: model.PositionTop},
			{ID: "t", Type: model.BlockTable, Position: model.PositionMain},
			{ID: "i", Type: model.BlockImage, Position: model.PositionMain},
			{ID: "q", Type: model.BlockQuote, Position: model.PositionMain},
		},
	}}}

	spec, err := Design(structure, &th)
	require.NoError(t, err)

	got := []model.ElementType{}
	for _, e := range spec.Slides[0].Elements {
		got = append(got, e.Type)
		// no "top" area: falls back to the first one
		assert.Equal(t, 1.2, e.Position.Y)
	}
	assert.Equal(t, []model.ElementType{model.ElementChart, model.ElementTable, model.ElementImage, model.ElementText}, got)
}

func TestSectionHeaderDropsBlocks(t *testing.T) {
	th := theme.Get("")
	structure := &model.SlideStructure{Slides: []model.Slide{{
		ID: "s", Type: model.SlideSectionHeader, Title: "Part",
		ContentBlocks: []model.ContentBlock{{ID: "b", Type: model.BlockParagraph, Position: model.PositionMain}},
	}}}

	spec, err := Design(structure, &th)
	require.NoError(t, err)
	assert.Len(t, spec.Slides[0].Elements, 1)
}

func TestDesignIsDeterministic(t *testing.T) {
	th := theme.Get("minimal-light")
	structure := &model.SlideStructure{Slides: []model.Slide{
		{ID: "a", Type: model.SlideBulletPoints, Title: "A", ContentBlocks: []model.ContentBlock{{ID: "b", Type: model.BlockBullets, Position: model.PositionMain}}},
	}}
	first, err := Design(structure, &th)
	require.NoError(t, err)
	second, err := Design(structure, &th)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDesignRejectsMissingInput(t *testing.T) {
	_, err := Design(nil, &model.Theme{})
	assert.Equal(t, errors.ErrCodeVisual, errors.Code(err))

	_, err = Design(&model.SlideStructure{}, nil)
	assert.Equal(t, errors.ErrCodeVisual, errors.Code(err))
}
