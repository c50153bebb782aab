package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

const sampleTxt = `PROJECT OVERVIEW
This project converts plain documents into slide decks for busy teams.

Goals:
- Save time on formatting
- Keep a consistent look
* Share results quickly

1. Upload a file
2) Pick a theme
`

func TestExtractTxt(t *testing.T) {
	content, err := Extract([]byte(sampleTxt), "notes.txt")
	require.NoError(t, err)

	assert.Equal(t, []model.Heading{
		{Level: 1, Text: "PROJECT OVERVIEW"},
		{Level: 2, Text: "Goals"},
	}, content.Headings)
	require.Len(t, content.Lists, 2)
	assert.Equal(t, model.ListBullet, content.Lists[0].Type)
	assert.Equal(t, []string{"Save time on formatting", "Keep a consistent look", "Share results quickly"}, content.Lists[0].Items)
	assert.Equal(t, model.ListNumbered, content.Lists[1].Type)
	assert.Equal(t, []string{"Upload a file", "Pick a theme"}, content.Lists[1].Items)
	assert.Equal(t, len(strings.Fields(sampleTxt)), content.WordCount)
	assert.Equal(t, 3, content.EstimatedSlides)
}

func TestExtractMarkdown(t *testing.T) {
	doc := "---\ntitle: Quarterly Review\n---\n" +
		"# Results ##\n\nRevenue grew in **every** region this quarter, led by new accounts.\n\n" +
		"Outlook\n-------\n\n" +
		"```\n# not a heading\n```\n\n" +
		"- [Docs](http://example.com) are *updated*\n- `code` samples\n"

	content, err := Extract([]byte(doc), "review.markdown")
	require.NoError(t, err)

	assert.Equal(t, []model.Heading{
		{Level: 1, Text: "Quarterly Review"},
		{Level: 1, Text: "Results"},
		{Level: 2, Text: "Outlook"},
	}, content.Headings)
	require.Len(t, content.Lists, 1)
	assert.Equal(t, []string{"Docs are updated", "code samples"}, content.Lists[0].Items)
	assert.NotContains(t, content.RawText, "title: Quarterly Review")
}

func TestExtractRejectsShortContent(t *testing.T) {
	_, err := Extract([]byte("too short"), "a.txt")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeExtraction, errors.Code(err))
}

func TestExtractRejectsUnknownExtension(t *testing.T) {
	_, err := Extract([]byte(sampleTxt), "a.pdf")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidFileType, errors.Code(err))
}

func TestEstimateSlidesIsClamped(t *testing.T) {
	assert.Equal(t, 3, estimateSlides(10, 0))
	assert.Equal(t, 7, estimateSlides(450, 2))
	assert.Equal(t, 20, estimateSlides(5000, 10))
}

func TestInferFileType(t *testing.T) {
	ft, ok := InferFileType("Notes.MD")
	assert.True(t, ok)
	assert.Equal(t, model.FileTypeMd, ft)

	_, ok = InferFileType("notes")
	assert.False(t, ok)
}
