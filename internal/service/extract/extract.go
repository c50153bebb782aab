// Package extract turns uploaded .txt and .md documents into
// model.ExtractedContent.
package extract

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

// MinWords is the smallest document the pipeline accepts.
const MinWords = 10

var SupportedExtensions = []string{".txt", ".md", ".markdown"}

var (
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
	numberedItem   = regexp.MustCompile(`^(\d+)[.)]\s+(.+)`)
)

// InferFileType maps a file name to its document type by extension.
func InferFileType(fileName string) (model.FileType, bool) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt":
		return model.FileTypeTxt, true
	case ".md", ".markdown":
		return model.FileTypeMd, true
	default:
		return "", false
	}
}

// Extract parses data according to the extension of fileName.
func Extract(data []byte, fileName string) (*model.ExtractedContent, error) {
	fileType, ok := InferFileType(fileName)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFileType,
			"unsupported file type, supported: "+strings.Join(SupportedExtensions, ", "))
	}
	if !utf8.Valid(data) {
		return nil, errors.New(errors.ErrCodeExtraction, "file is not valid UTF-8 text")
	}
	return ExtractText(string(data), fileType)
}

// ExtractText parses already decoded text.
func ExtractText(text string, fileType model.FileType) (*model.ExtractedContent, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var content *model.ExtractedContent
	switch fileType {
	case model.FileTypeTxt:
		content = fromTxt(text)
	case model.FileTypeMd:
		content = fromMarkdown(text)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFileType, "unsupported file type: "+string(fileType))
	}

	if content.WordCount < MinWords {
		return nil, errors.New(errors.ErrCodeExtraction, "file content is too short, at least 10 words are required")
	}
	return content, nil
}

func estimateSlides(words, headings int) int {
	n := int(math.Ceil(float64(words)/100)) + headings
	return max(3, min(20, n))
}

func countParagraphs(text string, skip func(string) bool) int {
	n := 0
	for _, p := range paragraphSplit.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" || (skip != nil && skip(p)) {
			continue
		}
		n++
	}
	return n
}

// listCollector groups consecutive list items; a blank line or a change of
// list type closes the current list.
type listCollector struct {
	lists   []model.List
	current []string
	kind    model.ListType
}

func (c *listCollector) add(kind model.ListType, item string) {
	if c.kind != kind && len(c.current) > 0 {
		c.flush()
	}
	c.kind = kind
	c.current = append(c.current, item)
}

func (c *listCollector) flush() {
	if len(c.current) > 0 && c.kind != "" {
		c.lists = append(c.lists, model.List{Type: c.kind, Items: c.current})
	}
	c.current = nil
	c.kind = ""
}

func (c *listCollector) result() []model.List {
	c.flush()
	if c.lists == nil {
		return []model.List{}
	}
	return c.lists
}
