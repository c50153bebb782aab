// Package orchestrator runs the four generation stages for each job in its
// own goroutine and records progress in a shared registry.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/LuckyTW/ppt-creator/internal/infra/limiter"
	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/infra/metrics"
	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/analysis"
	"github.com/LuckyTW/ppt-creator/internal/service/storage"
	"github.com/LuckyTW/ppt-creator/internal/service/structure"
	"github.com/LuckyTW/ppt-creator/internal/service/theme"
	"github.com/LuckyTW/ppt-creator/internal/service/visual"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

type Analyzer interface {
	Analyze(ctx context.Context, in analysis.Input) (*model.Outline, error)
}

type Designer interface {
	Design(ctx context.Context, outline *model.Outline, opts structure.Options) (*model.SlideStructure, error)
}

type Builder interface {
	Build(ctx context.Context, spec *model.VisualSpec, fileName string) (*model.BuiltFile, error)
}

// LayoutFunc places a slide structure on the canvas.
type LayoutFunc func(*model.SlideStructure, *model.Theme) (*model.VisualSpec, error)

// ProgressFunc receives a job snapshot after every transition. It runs on
// the job goroutine and must not block.
type ProgressFunc func(*model.Job)

// Deps wires the stages and shared infrastructure. Registry, Limiter and
// Layout get defaults when nil.
type Deps struct {
	Analyzer   Analyzer
	Designer   Designer
	Layout     LayoutFunc
	Builder    Builder
	Store      storage.Store
	Registry   *Registry
	Limiter    *limiter.Limiter
	OnProgress ProgressFunc
}

// Input is one generation request.
type Input struct {
	SourceID string
	FileName string
	Content  *model.ExtractedContent
	Options  model.GenerationOptions
}

// Result is the terminal state of a job.
type Result struct {
	Job      *model.Job
	ResultID string
	Err      error
}

// Handle lets the caller wait for a job it started.
type Handle struct {
	done   chan struct{}
	result Result
}

func (h *Handle) Done() <-chan struct{} { return h.done }

// Result is valid once Done is closed.
func (h *Handle) Result() Result { return h.result }

func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		return h.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

type Orchestrator struct {
	deps     Deps
	registry *Registry
	limiter  *limiter.Limiter
	layout   LayoutFunc
	logger   *logger.Logger
	now      func() time.Time
}

func New(deps Deps, log *logger.Logger) *Orchestrator {
	o := &Orchestrator{
		deps:     deps,
		registry: deps.Registry,
		limiter:  deps.Limiter,
		layout:   deps.Layout,
		logger:   logger.OrNop(log).Named("orchestrator"),
		now:      time.Now,
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.limiter == nil {
		o.limiter = limiter.New(10, 0)
	}
	if o.layout == nil {
		o.layout = visual.Design
	}
	return o
}

func (o *Orchestrator) Registry() *Registry { return o.registry }

// GetJob returns a snapshot of the job.
func (o *Orchestrator) GetJob(id string) (*model.Job, bool) {
	return o.registry.Get(id)
}

// Start registers a queued job and runs it in the background. The job is
// not tied to ctx's cancellation.
func (o *Orchestrator) Start(ctx context.Context, in Input) (string, *Handle) {
	id := util.NewID()
	job := model.NewJob(id, in.SourceID, in.FileName, o.now())
	o.registry.Insert(job)
	o.notify(job.Clone())

	h := &Handle{done: make(chan struct{})}
	go o.run(context.WithoutCancel(ctx), id, in, h)

	o.logger.Info("job queued", "job_id", id, "file", in.FileName, "theme", in.Options.Theme)
	return id, h
}

// notify hands job to the observer. A panicking observer is logged and
// otherwise ignored.
func (o *Orchestrator) notify(job *model.Job) {
	if o.deps.OnProgress == nil || job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("progress observer panicked", "job_id", job.ID, "status", job.Status, "panic", fmt.Sprint(r))
		}
	}()
	o.deps.OnProgress(job)
}

// update applies fn unless the job is already terminal, and reports
// whether it did.
func (o *Orchestrator) update(id string, fn func(*model.Job)) bool {
	applied := false
	snap, ok := o.registry.Update(id, func(j *model.Job) {
		if j.IsTerminal() {
			return
		}
		fn(j)
		applied = true
	})
	if ok && applied {
		o.notify(snap)
	}
	return applied
}

// enter marks stage in progress and everything before it completed.
func (o *Orchestrator) enter(id string, stage model.Stage) {
	o.update(id, func(j *model.Job) {
		idx := model.StageIndex(stage)
		if idx > 0 {
			j.StageProgress[model.Stages[idx-1]] = model.StageCompleted
		}
		j.Status = model.JobProcessing
		j.CurrentStage = stage
		j.StageProgress[stage] = model.StageInProgress
		j.RecomputeProgress()
	})
}

func (o *Orchestrator) fail(id string, stage model.Stage, err error) bool {
	now := o.now()
	applied := o.update(id, func(j *model.Job) {
		j.Status = model.JobFailed
		j.CurrentStage = stage
		j.StageProgress[stage] = model.StageFailed
		j.Error = errors.UserMessage(err)
		j.CompletedAt = &now
		j.RecomputeProgress()
	})
	if applied {
		metrics.IncJob(string(model.JobFailed))
	}
	return applied
}

func (o *Orchestrator) run(ctx context.Context, id string, in Input, h *Handle) {
	stage := model.Stages[0]
	log := o.logger.With("job_id", id)

	defer func() {
		if r := recover(); r != nil {
			log.Error("job panicked", "stage", stage, "panic", fmt.Sprint(r))
			err := errors.New(errors.ErrCodeInternal, fmt.Sprintf("unexpected failure during %s", stage))
			if o.fail(id, stage, err) {
				h.result.Err = err
			}
		}
		h.result.Job, _ = o.registry.Get(id)
		close(h.done)
	}()

	release, err := o.limiter.Acquire(ctx)
	if err != nil {
		err = errors.Wrap(err, errors.ErrCodeRateLimited, "job could not be admitted")
		o.fail(id, stage, err)
		h.result.Err = err
		return
	}
	defer release()

	step := func(s model.Stage, fn func() error) error {
		stage = s
		o.enter(id, s)
		start := time.Now()
		err := fn()
		metrics.ObserveStage(string(s), time.Since(start))
		if err != nil {
			log.Error("stage failed", "stage", s, "error", err)
			o.fail(id, s, err)
			return err
		}
		log.Debug("stage completed", "stage", s, "elapsed_ms", time.Since(start).Milliseconds())
		return nil
	}

	lang := model.NormalizeLanguage(in.Options.Language)
	th := theme.Get(in.Options.Theme)

	var (
		outline *model.Outline
		slides  *model.SlideStructure
		spec    *model.VisualSpec
		file    *model.BuiltFile
		object  *storage.Object
	)

	steps := []struct {
		stage model.Stage
		fn    func() error
	}{
		{model.StageContentAnalysis, func() (err error) {
			outline, err = o.deps.Analyzer.Analyze(ctx, analysis.Input{
				Content:  in.Content,
				FileName: in.FileName,
				Language: lang,
			})
			return err
		}},
		{model.StageStructureDesign, func() (err error) {
			slides, err = o.deps.Designer.Design(ctx, outline, structure.DefaultOptions(lang, in.Options.SlideCount))
			return err
		}},
		{model.StageVisualDesign, func() (err error) {
			spec, err = o.layout(slides, &th)
			return err
		}},
		{model.StagePPTBuild, func() (err error) {
			if file, err = o.deps.Builder.Build(ctx, spec, in.FileName); err != nil {
				return err
			}
			object, err = o.deps.Store.Put(ctx, file.Buffer, file.FileName)
			return err
		}},
	}

	for _, s := range steps {
		if err := step(s.stage, s.fn); err != nil {
			h.result.Err = err
			return
		}
	}

	now := o.now()
	completed := o.update(id, func(j *model.Job) {
		j.StageProgress[model.StagePPTBuild] = model.StageCompleted
		j.Status = model.JobCompleted
		j.ResultID = object.ID
		j.CompletedAt = &now
		j.RecomputeProgress()
	})
	if !completed {
		return
	}
	metrics.IncJob(string(model.JobCompleted))
	h.result.ResultID = object.ID

	log.Info("job completed",
		"result_id", object.ID,
		"slides", file.Stats.TotalSlides,
		"bytes", file.Size,
	)
}

// RunJanitor prunes terminal jobs older than retention every interval until
// ctx is done.
func (o *Orchestrator) RunJanitor(ctx context.Context, retention, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := o.registry.Prune(o.now().Add(-retention)); n > 0 {
				o.logger.Debug("pruned finished jobs", "count", n)
			}
		}
	}
}
