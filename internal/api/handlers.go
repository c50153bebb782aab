package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LuckyTW/ppt-creator/internal/infra/config"
	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/extract"
	"github.com/LuckyTW/ppt-creator/internal/service/orchestrator"
	"github.com/LuckyTW/ppt-creator/internal/service/storage"
	"github.com/LuckyTW/ppt-creator/internal/service/theme"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

// Jobs is the part of the orchestrator the handlers use.
type Jobs interface {
	Start(ctx context.Context, in orchestrator.Input) (string, *orchestrator.Handle)
	GetJob(id string) (*model.Job, bool)
}

type Options struct {
	Upload config.UploadConfig
	Stream config.StreamConfig
}

type Handler struct {
	jobs   Jobs
	store  storage.Store
	opts   Options
	logger *logger.Logger
}

func NewHandler(jobs Jobs, store storage.Store, opts Options, log *logger.Logger) *Handler {
	if opts.Upload.MaxBytes <= 0 {
		opts.Upload.MaxBytes = 5 * 1024 * 1024
	}
	if opts.Stream.PollIntervalMillis <= 0 {
		opts.Stream.PollIntervalMillis = 1000
	}
	if opts.Stream.MaxPolls <= 0 {
		opts.Stream.MaxPolls = 120
	}
	return &Handler{
		jobs:   jobs,
		store:  store,
		opts:   opts,
		logger: logger.OrNop(log),
	}
}

func (h *Handler) Upload(c *gin.Context) {
	limit := h.opts.Upload.MaxBytes
	// room for the multipart framing around the file
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+64*1024)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.handleError(c, errors.New(errors.ErrCodeFileTooLarge, "file exceeds the upload limit"))
			return
		}
		h.handleError(c, errors.New(errors.ErrCodeInvalidReq, "no file provided"))
		return
	}
	if fh.Size > limit {
		h.handleError(c, errors.New(errors.ErrCodeFileTooLarge, "file exceeds the upload limit"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.handleError(c, errors.Wrap(err, errors.ErrCodeInvalidReq, "could not read the uploaded file"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		h.handleError(c, errors.Wrap(err, errors.ErrCodeInvalidReq, "could not read the uploaded file"))
		return
	}
	if int64(len(data)) > limit {
		h.handleError(c, errors.New(errors.ErrCodeFileTooLarge, "file exceeds the upload limit"))
		return
	}

	name := filepath.Base(fh.Filename)
	content, err := extract.Extract(data, name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fileType, _ := extract.InferFileType(name)

	obj, err := h.store.Put(c.Request.Context(), data, name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	preview := util.Truncate(content.RawText, previewRunes)
	if len(preview) < len(content.RawText) {
		preview += "..."
	}

	h.logger.Info("file uploaded",
		"request_id", requestID(c),
		"file_id", obj.ID,
		"file", name,
		"words", content.WordCount,
	)

	c.JSON(http.StatusOK, UploadResponse{
		FileID:          obj.ID,
		FileName:        name,
		FileType:        fileType,
		WordCount:       content.WordCount,
		EstimatedSlides: content.EstimatedSlides,
		Preview:         preview,
		UploadedAt:      obj.CreatedAt,
	})
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, errors.Wrap(err, errors.ErrCodeInvalidReq, "file_id is required"))
		return
	}

	opts, err := generationOptions(req.Options)
	if err != nil {
		h.handleError(c, err)
		return
	}

	obj, err := h.store.Get(c.Request.Context(), req.FileID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			err = errors.New(errors.ErrCodeNotFound, "uploaded file not found, it may have expired")
		}
		h.handleError(c, err)
		return
	}

	content, err := extract.Extract(obj.Data, obj.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	jobID, _ := h.jobs.Start(c.Request.Context(), orchestrator.Input{
		SourceID: obj.ID,
		FileName: obj.Name,
		Content:  content,
		Options:  opts,
	})

	c.JSON(http.StatusAccepted, GenerateResponse{
		JobID:         jobID,
		Status:        model.JobQueued,
		EstimatedTime: estimatedSeconds,
	})
}

func generationOptions(in GenerateOptions) (model.GenerationOptions, error) {
	opts := model.GenerationOptions{
		Theme:      in.Theme,
		SlideCount: in.SlideCount,
		Language:   model.Language(in.Language),
	}
	if opts.Theme == "" {
		opts.Theme = theme.DefaultID
	}
	if !theme.Exists(opts.Theme) {
		return opts, errors.New(errors.ErrCodeInvalidReq, "unknown theme "+in.Theme)
	}
	switch opts.Language {
	case "":
		opts.Language = model.LangKorean
	case model.LangKorean, model.LangEnglish:
	default:
		return opts, errors.New(errors.ErrCodeInvalidReq, "language must be ko or en")
	}
	if opts.SlideCount < 0 {
		return opts, errors.New(errors.ErrCodeInvalidReq, "slide_count must not be negative")
	}
	return opts, nil
}

func (h *Handler) GetJob(c *gin.Context) {
	job, ok := h.jobs.GetJob(c.Param("jobId"))
	if !ok {
		h.handleError(c, errors.New(errors.ErrCodeNotFound, "job not found"))
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) Download(c *gin.Context) {
	obj, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err == nil && !strings.EqualFold(filepath.Ext(obj.Name), ".pptx") {
		err = errors.New(errors.ErrCodeNotFound, "file not found")
	}
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			err = errors.New(errors.ErrCodeNotFound, "file not found, it may have expired")
		}
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(obj.Name))
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, model.PPTXMimeType, obj.Data)
}

func (h *Handler) Themes(c *gin.Context) {
	c.JSON(http.StatusOK, ThemesResponse{Themes: theme.Previews()})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	code := errors.Code(err)
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "request_id", requestID(c), "path", c.Request.URL.Path, "error", err)
	} else {
		h.logger.Debug("request rejected", "request_id", requestID(c), "code", code, "error", err)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: requestID(c),
		Error: ErrorBody{
			Code:    code,
			Message: errors.UserMessage(err),
		},
	})
}

func httpStatus(code string) int {
	switch code {
	case errors.ErrCodeInvalidReq, errors.ErrCodeInvalidFileType, errors.ErrCodeExtraction:
		return http.StatusBadRequest
	case errors.ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
