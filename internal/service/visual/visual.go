// Package visual places the slide structure on a fixed 16:9 canvas. The
// placement is a static table lookup per slide type.
package visual

import (
	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

// Design returns one SlideVisual per slide, in slide order.
func Design(structure *model.SlideStructure, theme *model.Theme) (*model.VisualSpec, error) {
	if structure == nil {
		return nil, errors.New(errors.ErrCodeVisual, "no slide structure to lay out")
	}
	if theme == nil {
		return nil, errors.New(errors.ErrCodeVisual, "no theme to apply")
	}

	slides := make([]model.SlideVisual, 0, len(structure.Slides))
	for _, slide := range structure.Slides {
		slides = append(slides, designSlide(slide, theme))
	}

	return &model.VisualSpec{Slides: slides, Theme: *theme}, nil
}

func designSlide(slide model.Slide, theme *model.Theme) model.SlideVisual {
	l := layoutFor(slide.Type)
	elements := make([]model.VisualElement, 0, len(slide.ContentBlocks)+2)

	if slide.Title != "" {
		elements = append(elements, titleElement(slide, l, theme))
	}
	if slide.Subtitle != "" && slide.Type == model.SlideTitle {
		elements = append(elements, subtitleElement(slide, theme))
	}

	for _, block := range slide.ContentBlocks {
		a, ok := l.findArea(block.Position)
		if !ok {
			continue
		}
		elements = append(elements, contentElement(slide.ID, block, a, theme))
	}

	return model.SlideVisual{
		SlideID:    slide.ID,
		SlideType:  slide.Type,
		Background: &model.Background{Color: theme.Colors.Background},
		Elements:   elements,
	}
}

func isMainTitle(t model.SlideType) bool {
	return t == model.SlideTitle || t == model.SlideSectionHeader || t == model.SlideThankYou
}

func titleElement(slide model.Slide, l layout, theme *model.Theme) model.VisualElement {
	style := model.ElementStyle{
		FontSize: theme.Styles.SubheadingSize,
		FontFace: theme.Fonts.Heading,
		Color:    theme.Colors.Text,
		Bold:     true,
		Align:    "left",
		VAlign:   "middle",
	}
	if isMainTitle(slide.Type) {
		style.FontSize = theme.Styles.HeadingSize
		style.Align = "center"
	}

	return model.VisualElement{
		ID:       slide.ID + "_title",
		Type:     model.ElementText,
		Role:     model.RoleTitle,
		Position: l.titlePos,
		Size:     l.titleSize,
		Style:    style,
		Content:  model.TextContent(slide.Title),
	}
}

func subtitleElement(slide model.Slide, theme *model.Theme) model.VisualElement {
	return model.VisualElement{
		ID:       slide.ID + "_subtitle",
		Type:     model.ElementText,
		Role:     model.RoleSubtitle,
		Position: model.Point{X: 0.5, Y: 3.5},
		Size:     model.Size{W: 9, H: 0.8},
		Style: model.ElementStyle{
			FontSize: theme.Styles.SubheadingSize,
			FontFace: theme.Fonts.Body,
			Color:    theme.Colors.Muted,
			Align:    "center",
			VAlign:   "middle",
		},
		Content: model.TextContent(slide.Subtitle),
	}
}

func contentElement(slideID string, block model.ContentBlock, a area, theme *model.Theme) model.VisualElement {
	id := block.ID
	if id == "" {
		id = slideID + "_block"
	}
	return model.VisualElement{
		ID:       id,
		Type:     elementType(block.Type),
		Role:     model.RoleBody,
		Position: model.Point{X: a.x, Y: a.y},
		Size:     model.Size{W: a.w, H: a.h},
		Style: model.ElementStyle{
			FontSize: theme.Styles.BodySize,
			FontFace: theme.Fonts.Body,
			Color:    theme.Colors.Text,
			Align:    "left",
			VAlign:   "top",
		},
		Content: block.Content,
	}
}

func elementType(t model.BlockType) model.ElementType {
	switch t {
	case model.BlockChart:
		return model.ElementChart
	case model.BlockTable:
		return model.ElementTable
	case model.BlockImage:
		return model.ElementImage
	default:
		return model.ElementText
	}
}
