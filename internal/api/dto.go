package api

import (
	"time"

	"github.com/LuckyTW/ppt-creator/internal/model"
)

type UploadResponse struct {
	FileID          string         `json:"file_id"`
	FileName        string         `json:"file_name"`
	FileType        model.FileType `json:"file_type"`
	WordCount       int            `json:"word_count"`
	EstimatedSlides int            `json:"estimated_slides"`
	Preview         string         `json:"preview"`
	UploadedAt      time.Time      `json:"uploaded_at"`
}

type GenerateOptions struct {
	Theme      string `json:"theme"`
	SlideCount int    `json:"slide_count"`
	Language   string `json:"language"`
}

type GenerateRequest struct {
	FileID  string          `json:"file_id" binding:"required"`
	Options GenerateOptions `json:"options"`
}

type GenerateResponse struct {
	JobID         string          `json:"job_id"`
	Status        model.JobStatus `json:"status"`
	EstimatedTime int             `json:"estimated_time"`
}

type ThemesResponse struct {
	Themes []model.ThemePreview `json:"themes"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	RequestID string    `json:"request_id,omitempty"`
	Error     ErrorBody `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// StatusEvent is the payload of every event on the status stream.
type StatusEvent struct {
	JobID         string                            `json:"job_id"`
	Status        model.JobStatus                   `json:"status,omitempty"`
	CurrentStage  model.Stage                       `json:"current_stage,omitempty"`
	Progress      int                               `json:"progress"`
	StageProgress map[model.Stage]model.StageStatus `json:"stage_progress,omitempty"`
	ResultID      string                            `json:"result_id,omitempty"`
	Error         string                            `json:"error,omitempty"`
}

const (
	EventTypeProgress = "progress"
	EventTypeComplete = "complete"
	EventTypeError    = "error"

	// estimatedSeconds is what clients are told to expect per job.
	estimatedSeconds = 30
	previewRunes     = 500
)

func statusEvent(job *model.Job) StatusEvent {
	return StatusEvent{
		JobID:         job.ID,
		Status:        job.Status,
		CurrentStage:  job.CurrentStage,
		Progress:      job.Progress,
		StageProgress: job.StageProgress,
		ResultID:      job.ResultID,
		Error:         job.Error,
	}
}
