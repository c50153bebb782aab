package model

import "time"

type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Stage names one step of the generation pipeline.
type Stage string

const (
	StageContentAnalysis Stage = "content_analysis"
	StageStructureDesign Stage = "structure_design"
	StageVisualDesign    Stage = "visual_design"
	StagePPTBuild        Stage = "ppt_build"
)

// Stages is the fixed execution order.
var Stages = []Stage{
	StageContentAnalysis,
	StageStructureDesign,
	StageVisualDesign,
	StagePPTBuild,
}

type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageInProgress StageStatus = "in_progress"
	StageCompleted  StageStatus = "completed"
	StageFailed     StageStatus = "failed"
)

// Job is the orchestration record for one generation request.
type Job struct {
	ID            string                `json:"id"`
	SourceID      string                `json:"source_id,omitempty"`
	FileName      string                `json:"file_name,omitempty"`
	Status        JobStatus             `json:"status"`
	CurrentStage  Stage                 `json:"current_stage"`
	StageProgress map[Stage]StageStatus `json:"stage_progress"`
	Progress      int                   `json:"progress"`
	Error         string                `json:"error,omitempty"`
	ResultID      string                `json:"result_id,omitempty"`
	StartedAt     time.Time             `json:"started_at"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
}

// NewJob returns a queued job with every stage pending.
func NewJob(id, sourceID, fileName string, now time.Time) *Job {
	progress := make(map[Stage]StageStatus, len(Stages))
	for _, s := range Stages {
		progress[s] = StagePending
	}
	return &Job{
		ID:            id,
		SourceID:      sourceID,
		FileName:      fileName,
		Status:        JobQueued,
		CurrentStage:  Stages[0],
		StageProgress: progress,
		StartedAt:     now,
	}
}

// Clone returns a deep copy safe to hand to readers.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	c := *j
	c.StageProgress = make(map[Stage]StageStatus, len(j.StageProgress))
	for k, v := range j.StageProgress {
		c.StageProgress[k] = v
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func (j *Job) IsTerminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

func (j *Job) CompletedStages() int {
	n := 0
	for _, s := range Stages {
		if j.StageProgress[s] == StageCompleted {
			n++
		}
	}
	return n
}

// RecomputeProgress derives Progress from the stage map.
func (j *Job) RecomputeProgress() {
	j.Progress = ProgressFor(j.CompletedStages())
}

// ProgressFor maps a completed-stage count to a percentage in 25-point steps.
func ProgressFor(completed int) int {
	return completed * 100 / len(Stages)
}

// StageIndex returns the position of s in Stages, or -1.
func StageIndex(s Stage) int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}
