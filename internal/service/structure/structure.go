// Package structure designs the ordered slide list for an outline.
package structure

import (
	"context"
	"fmt"

	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/infra/metrics"
	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/llm"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

const (
	stageName = string(model.StageStructureDesign)

	DefaultMaxTokens = 8192
	maxBullets       = 5
)

type Options struct {
	TargetSlideCount  int
	IncludeTOC        bool
	IncludeConclusion bool
	Language          model.Language
}

// DefaultOptions is what the pipeline uses for every job.
func DefaultOptions(lang model.Language, target int) Options {
	return Options{
		TargetSlideCount:  target,
		IncludeTOC:        true,
		IncludeConclusion: true,
		Language:          model.NormalizeLanguage(lang),
	}
}

type Service struct {
	gen    llm.Generator
	opts   llm.Options
	logger *logger.Logger
}

func New(gen llm.Generator, opts llm.Options, log *logger.Logger) *Service {
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultMaxTokens
	}
	return &Service{gen: gen, opts: opts, logger: logger.OrNop(log).Named("structure")}
}

func (s *Service) Design(ctx context.Context, outline *model.Outline, opts Options) (*model.SlideStructure, error) {
	if outline == nil {
		return nil, errors.New(errors.ErrCodeStructure, "no outline to design slides from")
	}
	opts.Language = model.NormalizeLanguage(opts.Language)

	if s.gen == nil {
		s.logger.Info("no AI generator, using fallback structure", "title", outline.Metadata.Title)
		return s.fallback(outline, opts), nil
	}

	reply, err := s.gen.Generate(ctx, buildPrompt(outline, opts), s.opts)
	if err != nil {
		metrics.IncAICall(stageName, "error")
		s.logger.Warn("AI structure design failed, using fallback", "error", err)
		return s.fallback(outline, opts), nil
	}

	var raw rawStructure
	if err := llm.DecodeJSON(reply, &raw); err != nil {
		metrics.IncAICall(stageName, "unparsable")
		s.logger.Warn("AI structure reply was not valid JSON, using fallback", "error", err)
		return s.fallback(outline, opts), nil
	}
	if len(raw.Slides) == 0 {
		metrics.IncAICall(stageName, "unparsable")
		s.logger.Warn("AI structure reply had no slides, using fallback")
		return s.fallback(outline, opts), nil
	}

	metrics.IncAICall(stageName, "ok")
	result := normalize(raw, outline)
	s.logger.Debug("AI structure done", "slides", len(result.Slides))
	return result, nil
}

func (s *Service) fallback(outline *model.Outline, opts Options) *model.SlideStructure {
	metrics.IncFallback(stageName)
	return Fallback(outline, opts)
}

type rawBlock struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Content  model.BlockContent `json:"content"`
	Position string             `json:"position"`
}

type rawSlide struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle"`
	ContentBlocks  []rawBlock `json:"contentBlocks"`
	SpeakerNotes   string     `json:"speakerNotes"`
	TransitionType string     `json:"transitionType"`
}

type rawStructure struct {
	Presentation struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
	} `json:"presentation"`
	Slides []rawSlide `json:"slides"`
	Flow   struct {
		Narrative   string           `json:"narrative"`
		Transitions []model.FlowHint `json:"transitions"`
	} `json:"flow"`
}

// normalize fills in missing ids and defaults. Slides keep the order the
// model listed them in; Order is renumbered 1..N so it is unique and
// monotonic whatever the model sent.
func normalize(raw rawStructure, outline *model.Outline) *model.SlideStructure {
	slides := make([]model.Slide, 0, len(raw.Slides))
	seen := make(map[string]bool, len(raw.Slides))

	for i, rs := range raw.Slides {
		id := rs.ID
		if id == "" || seen[id] {
			id = fmt.Sprintf("slide_%d", i+1)
			for seen[id] {
				id += "_"
			}
		}
		seen[id] = true

		slideType := model.SlideType(rs.Type)
		if !slideType.Valid() {
			slideType = model.SlideContent
		}

		blocks := make([]model.ContentBlock, 0, len(rs.ContentBlocks))
		for j, rb := range rs.ContentBlocks {
			blocks = append(blocks, normalizeBlock(rb, j))
		}

		slides = append(slides, model.Slide{
			ID:             id,
			Order:          i + 1,
			Type:           slideType,
			Title:          rs.Title,
			Subtitle:       rs.Subtitle,
			ContentBlocks:  blocks,
			SpeakerNotes:   rs.SpeakerNotes,
			TransitionType: model.TransitionType(rs.TransitionType),
		})
	}

	transitions := make([]model.FlowHint, 0, len(raw.Flow.Transitions))
	for _, t := range raw.Flow.Transitions {
		switch t.ConnectionType {
		case model.ConnectContinuation, model.ConnectContrast, model.ConnectExample, model.ConnectConclusion:
		default:
			t.ConnectionType = model.ConnectContinuation
		}
		transitions = append(transitions, t)
	}

	title := raw.Presentation.Title
	if title == "" {
		title = outline.Metadata.Title
	}

	return &model.SlideStructure{
		Presentation: model.PresentationMeta{
			Title:       title,
			Subtitle:    raw.Presentation.Subtitle,
			TotalSlides: len(slides),
		},
		Slides: slides,
		Flow: model.Flow{
			Narrative:   raw.Flow.Narrative,
			Transitions: transitions,
		},
	}
}

func normalizeBlock(rb rawBlock, index int) model.ContentBlock {
	block := model.ContentBlock{
		ID:       rb.ID,
		Type:     model.BlockType(rb.Type),
		Content:  rb.Content,
		Position: model.BlockPosition(rb.Position),
	}
	if block.ID == "" {
		block.ID = fmt.Sprintf("block_%d", index+1)
	}
	if !block.Type.Valid() {
		block.Type = model.BlockParagraph
	}
	if !block.Position.Valid() {
		block.Position = model.PositionMain
	}
	if block.Content.Kind == model.KindNone {
		block.Content = model.TextContent("")
	}
	return block
}
