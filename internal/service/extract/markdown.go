package extract

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LuckyTW/ppt-creator/internal/model"
)

var (
	mdHeading       = regexp.MustCompile(`^(#{1,6})\s+(.+)`)
	mdClosingHashes = regexp.MustCompile(`\s*#+\s*$`)
	mdSetextH1      = regexp.MustCompile(`^=+$`)
	mdSetextH2      = regexp.MustCompile(`^-+$`)
	mdBullet        = regexp.MustCompile(`^[-*+]\s+(.+)`)

	inlineRules = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
		{regexp.MustCompile(`__(.+?)__`), "$1"},
		{regexp.MustCompile(`\*(.+?)\*`), "$1"},
		{regexp.MustCompile(`_(.+?)_`), "$1"},
		{regexp.MustCompile("`(.+?)`"), "$1"},
		{regexp.MustCompile(`!\[.*?\]\(.+?\)`), ""},
		{regexp.MustCompile(`\[(.+?)\]\(.+?\)`), "$1"},
		{regexp.MustCompile(`~~(.+?)~~`), "$1"},
	}

	syntaxRules = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile("(?s)```.*?```"), ""},
		{regexp.MustCompile("`[^`]+`"), ""},
		{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
		{regexp.MustCompile(`(?m)^[-*+]\s+`), ""},
		{regexp.MustCompile(`(?m)^\d+[.)]\s+`), ""},
		{regexp.MustCompile(`!\[.*?\]\(.+?\)`), ""},
		{regexp.MustCompile(`\[(.+?)\]\(.+?\)`), "$1"},
		{regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
		{regexp.MustCompile(`__(.+?)__`), "$1"},
		{regexp.MustCompile(`\*(.+?)\*`), "$1"},
		{regexp.MustCompile(`_(.+?)_`), "$1"},
		{regexp.MustCompile(`~~(.+?)~~`), "$1"},
		{regexp.MustCompile(`(?m)^>\s*`), ""},
		{regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`), ""},
	}
)

func fromMarkdown(text string) *model.ExtractedContent {
	body, title := splitFrontmatter(text)

	headings := []model.Heading{}
	if title != "" {
		headings = append(headings, model.Heading{Level: 1, Text: title})
	}
	var lists listCollector
	inCode := false

	lines := strings.Split(body, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		if line == "" {
			lists.flush()
			continue
		}

		if m := mdHeading.FindStringSubmatch(line); m != nil {
			heading := mdClosingHashes.ReplaceAllString(m[2], "")
			headings = append(headings, model.Heading{Level: len(m[1]), Text: heading})
			continue
		}

		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if mdSetextH1.MatchString(next) {
				headings = append(headings, model.Heading{Level: 1, Text: line})
				continue
			}
			if mdSetextH2.MatchString(next) && !strings.HasPrefix(line, "-") {
				headings = append(headings, model.Heading{Level: 2, Text: line})
				continue
			}
		}

		if m := mdBullet.FindStringSubmatch(line); m != nil {
			lists.add(model.ListBullet, stripInline(m[1]))
			continue
		}
		if m := numberedItem.FindStringSubmatch(line); m != nil {
			lists.add(model.ListNumbered, stripInline(m[2]))
		}
	}

	words := len(strings.Fields(stripSyntax(body)))
	paragraphs := countParagraphs(body, func(p string) bool {
		return strings.HasPrefix(p, "```")
	})

	return &model.ExtractedContent{
		RawText:         body,
		WordCount:       words,
		ParagraphCount:  paragraphs,
		Headings:        headings,
		Lists:           lists.result(),
		EstimatedSlides: estimateSlides(words, len(headings)),
	}
}

// splitFrontmatter removes a leading YAML front matter block and returns
// the remaining text plus its title, if any. Unparseable front matter is
// dropped silently.
func splitFrontmatter(text string) (string, string) {
	if !strings.HasPrefix(text, "---\n") {
		return text, ""
	}
	end := strings.Index(text[4:], "\n---")
	if end < 0 {
		return text, ""
	}

	var meta struct {
		Title string `yaml:"title"`
	}
	_ = yaml.Unmarshal([]byte(text[4:4+end]), &meta)

	rest := text[4+end+4:]
	rest = strings.TrimPrefix(rest, "\n")
	return rest, strings.TrimSpace(meta.Title)
}

func stripInline(s string) string {
	for _, r := range inlineRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return strings.TrimSpace(s)
}

func stripSyntax(s string) string {
	for _, r := range syntaxRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}
