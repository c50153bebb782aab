package analysis

import (
	"fmt"
	"strings"

	"github.com/LuckyTW/ppt-creator/internal/model"
)

func languageInstruction(lang model.Language) string {
	if lang == model.LangEnglish {
		return "Please respond in English."
	}
	return "Write every value of the response in Korean (한국어)."
}

func buildPrompt(in Input) string {
	c := in.Content

	headings := make([]string, 0, len(c.Headings))
	for _, h := range c.Headings {
		headings = append(headings, fmt.Sprintf("[L%d] %s", h.Level, h.Text))
	}
	headingList := strings.Join(headings, ", ")
	if headingList == "" {
		headingList = "none"
	}

	return fmt.Sprintf(`You are an expert at analysing content for presentations. Analyse the text below and restructure it for a slide deck.

%s

## File
- Name: %s
- Words: %d
- Paragraphs: %d

## Source text
%s

## Existing structure
- Headings: %s
- Lists: %d

## Output
Reply with JSON in exactly this shape:

`+"```json"+`
{
  "metadata": {
    "title": "short, punchy presentation title",
    "subtitle": "optional subtitle",
    "mainTopic": "the core topic in one sentence",
    "language": "%s"
  },
  "sections": [
    {
      "id": "section_1",
      "title": "section title",
      "content": "summary of the section",
      "bulletPoints": ["point 1", "point 2"],
      "importance": "high|medium|low",
      "suggestedSlideType": "bullet_points|comparison|chart|table|quote"
    }
  ],
  "keywords": ["keyword"],
  "summary": "summary in at most three sentences",
  "dataElements": [
    {"type": "list|table|quote|statistic|comparison", "content": "data", "sectionId": "section_1"}
  ],
  "recommendedSlideCount": 8
}
`+"```"+`

## Guidelines
1. Title: clear and engaging.
2. Sections: 3 to 7, following the logical flow.
3. Bullet points: at most 5 per section, each at most 20 words.
4. Importance: high for core, medium for supporting, low for optional.
5. Suggested slide type: pick the layout that fits the content.
6. Slide count: one message per slide, including cover, agenda and conclusion.

Reply with JSON only.`,
		languageInstruction(in.Language),
		in.FileName, c.WordCount, c.ParagraphCount,
		c.RawText,
		headingList, len(c.Lists),
		in.Language,
	)
}
