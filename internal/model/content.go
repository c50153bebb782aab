package model

type FileType string

const (
	FileTypeTxt FileType = "txt"
	FileTypeMd  FileType = "md"
)

type ListType string

const (
	ListBullet   ListType = "bullet"
	ListNumbered ListType = "numbered"
)

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type List struct {
	Type  ListType `json:"type"`
	Items []string `json:"items"`
}

// ExtractedContent is the structured text pulled out of an uploaded document.
type ExtractedContent struct {
	RawText         string    `json:"raw_text"`
	WordCount       int       `json:"word_count"`
	ParagraphCount  int       `json:"paragraph_count"`
	Headings        []Heading `json:"headings"`
	Lists           []List    `json:"lists"`
	EstimatedSlides int       `json:"estimated_slides"`
}

type Language string

const (
	LangKorean  Language = "ko"
	LangEnglish Language = "en"
)

// NormalizeLanguage maps anything unknown to Korean, the product default.
func NormalizeLanguage(l Language) Language {
	switch l {
	case LangEnglish:
		return LangEnglish
	default:
		return LangKorean
	}
}

// GenerationOptions are the user-selected knobs for one job.
type GenerationOptions struct {
	Theme      string   `json:"theme"`
	SlideCount int      `json:"slide_count,omitempty"`
	Language   Language `json:"language"`
}
