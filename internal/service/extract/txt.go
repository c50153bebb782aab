package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/LuckyTW/ppt-creator/internal/model"
)

var txtBullet = regexp.MustCompile(`^[-•*]\s+(.+)`)

func fromTxt(text string) *model.ExtractedContent {
	headings := []model.Heading{}
	var lists listCollector

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			lists.flush()
			continue
		}

		length := utf8.RuneCountInString(line)
		if length < 100 && isUpperHeading(line) {
			headings = append(headings, model.Heading{Level: 1, Text: line})
			continue
		}
		if length < 80 && strings.HasSuffix(line, ":") {
			headings = append(headings, model.Heading{Level: 2, Text: strings.TrimSuffix(line, ":")})
			continue
		}
		if m := txtBullet.FindStringSubmatch(line); m != nil {
			lists.add(model.ListBullet, m[1])
			continue
		}
		if m := numberedItem.FindStringSubmatch(line); m != nil {
			lists.add(model.ListNumbered, m[2])
		}
	}

	words := len(strings.Fields(text))
	return &model.ExtractedContent{
		RawText:         text,
		WordCount:       words,
		ParagraphCount:  countParagraphs(text, nil),
		Headings:        headings,
		Lists:           lists.result(),
		EstimatedSlides: estimateSlides(words, len(headings)),
	}
}

// isUpperHeading reports whether line starts with a Latin capital and has
// no lowercase letters.
func isUpperHeading(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	if r < 'A' || r > 'Z' {
		return false
	}
	return strings.ToUpper(line) == line
}
