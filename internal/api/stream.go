package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LuckyTW/ppt-creator/internal/model"
)

// Status streams job progress as server-sent events. It polls the job
// registry and only emits when the snapshot changed. The stream ends on a
// terminal job, a vanished job, client disconnect or after MaxPolls polls.
func (h *Handler) Status(c *gin.Context) {
	jobID := c.Param("jobId")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	send := func(event string, data StatusEvent) {
		c.SSEvent(event, data)
		c.Writer.Flush()
	}

	job, ok := h.jobs.GetJob(jobID)
	if !ok {
		send(EventTypeError, StatusEvent{JobID: jobID, Error: "job not found"})
		return
	}

	send(EventTypeProgress, statusEvent(job))
	if h.sendTerminal(job, send) {
		return
	}

	ticker := time.NewTicker(h.opts.Stream.PollInterval())
	defer ticker.Stop()

	ctx := c.Request.Context()
	last := job
	for polls := 1; ; polls++ {
		select {
		case <-ctx.Done():
			h.logger.Debug("status stream closed by client", "job_id", jobID)
			return
		case <-ticker.C:
		}

		job, ok := h.jobs.GetJob(jobID)
		if !ok {
			send(EventTypeError, StatusEvent{JobID: jobID, Error: "job no longer exists"})
			return
		}

		if changed(last, job) {
			last = job
			if h.sendTerminal(job, send) {
				return
			}
			send(EventTypeProgress, statusEvent(job))
		}

		if polls >= h.opts.Stream.MaxPolls {
			send(EventTypeError, StatusEvent{JobID: jobID, Error: "timed out waiting for the job"})
			return
		}
	}
}

// sendTerminal emits complete or error for a finished job and reports
// whether it did.
func (h *Handler) sendTerminal(job *model.Job, send func(string, StatusEvent)) bool {
	switch job.Status {
	case model.JobCompleted:
		send(EventTypeComplete, statusEvent(job))
		return true
	case model.JobFailed:
		send(EventTypeError, statusEvent(job))
		return true
	}
	return false
}

func changed(a, b *model.Job) bool {
	return a.Progress != b.Progress || a.Status != b.Status || a.CurrentStage != b.CurrentStage
}
