package model

import "encoding/json"

type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

type OutlineMetadata struct {
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle,omitempty"`
	Author    string   `json:"author,omitempty"`
	MainTopic string   `json:"mainTopic"`
	Language  Language `json:"language"`
}

type Section struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	BulletPoints       []string   `json:"bulletPoints"`
	Importance         Importance `json:"importance"`
	SuggestedSlideType string     `json:"suggestedSlideType"`
}

// DataElement is a table, quote or statistic the analysis spotted in a
// section. Content is kept verbatim.
type DataElement struct {
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content,omitempty"`
	SectionID string          `json:"sectionId"`
}

// Outline is the content analysis result.
type Outline struct {
	Metadata              OutlineMetadata `json:"metadata"`
	Sections              []Section       `json:"sections"`
	Keywords              []string        `json:"keywords"`
	Summary               string          `json:"summary"`
	DataElements          []DataElement   `json:"dataElements"`
	RecommendedSlideCount int             `json:"recommendedSlideCount"`
}
