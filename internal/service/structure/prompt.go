package structure

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func buildPrompt(outline *model.Outline, opts Options) string {
	var sections strings.Builder
	for i, s := range outline.Sections {
		bullets := s.BulletPoints
		if len(bullets) > 3 {
			bullets = bullets[:3]
		}
		fmt.Fprintf(&sections, "\n%d. %s (importance: %s)\n   - content: %s\n   - bullets: %s\n   - suggested type: %s\n",
			i+1, s.Title, s.Importance, util.Truncate(s.Content, 200), strings.Join(bullets, ", "), s.SuggestedSlideType)
	}

	keywords := strings.Join(outline.Keywords, ", ")
	if keywords == "" {
		keywords = "none"
	}
	subtitle := outline.Metadata.Subtitle
	if subtitle == "" {
		subtitle = "none"
	}
	target := "auto"
	if opts.TargetSlideCount > 0 {
		target = strconv.Itoa(opts.TargetSlideCount)
	}

	lang := "Write every value of the response in Korean (한국어)."
	if opts.Language == model.LangEnglish {
		lang = "Please respond in English."
	}

	return fmt.Sprintf(`You are an expert presentation architect. Design the best slide structure for the analysed content below.

%s

## Analysis
- Title: %s
- Subtitle: %s
- Main topic: %s
- Recommended slide count: %d

## Sections
%s
## Keywords
%s

## Options
- Target slide count: %s
- Include table of contents: %s
- Include conclusion: %s

## Output
Reply with JSON in exactly this shape:

`+"```json"+`
{
  "presentation": {"title": "presentation title", "subtitle": "optional", "totalSlides": 8},
  "slides": [
    {
      "id": "slide_1",
      "order": 1,
      "type": "title",
      "title": "slide title",
      "subtitle": "optional slide subtitle",
      "contentBlocks": [
        {
          "id": "block_1",
          "type": "heading|paragraph|bullets|numbered|table|chart|quote",
          "content": "a string, an array of strings, {\"items\": [...]}, {\"headers\": [...], \"rows\": [[...]]} or {\"type\": \"bar\", \"labels\": [...], \"datasets\": [{\"name\": \"...\", \"values\": [1, 2]}]}",
          "position": "main|left|right"
        }
      ],
      "speakerNotes": "optional notes"
    }
  ],
  "flow": {
    "narrative": "the storyline",
    "transitions": [
      {"fromSlideId": "slide_1", "toSlideId": "slide_2", "connectionType": "continuation|contrast|example|conclusion"}
    ]
  }
}
`+"```"+`

## Slide types
title, toc, section_header, content, bullet_points, comparison (two columns: left and right), chart, table, quote, conclusion, thank_you

## Principles
1. One message per slide.
2. At most 5 bullet points per slide, each at most 20 words.
3. Logical flow: introduction, body, conclusion.
4. Use a variety of slide types.

Reply with JSON only.`,
		lang,
		outline.Metadata.Title, subtitle, outline.Metadata.MainTopic, outline.RecommendedSlideCount,
		sections.String(),
		keywords,
		target, yesNo(opts.IncludeTOC), yesNo(opts.IncludeConclusion),
	)
}
