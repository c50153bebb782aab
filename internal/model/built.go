package model

import "time"

const PPTXMimeType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type BuildStats struct {
	TotalSlides    int           `json:"total_slides"`
	GenerationTime time.Duration `json:"generation_time"`
}

// BuiltFile is an in-memory .pptx package.
type BuiltFile struct {
	Buffer   []byte
	FileName string
	Size     int
	MimeType string
	Stats    BuildStats
}
