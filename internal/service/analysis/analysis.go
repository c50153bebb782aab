// Package analysis turns extracted document text into a presentation
// outline, by asking the AI generator when one is configured and by a
// deterministic heading/paragraph split otherwise.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/infra/metrics"
	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/llm"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

const (
	stageName = string(model.StageContentAnalysis)

	DefaultMaxTokens   = 4096
	DefaultTemperature = 0.7

	maxBullets = 5
)

type Input struct {
	Content  *model.ExtractedContent
	FileName string
	Language model.Language
}

type Service struct {
	gen    llm.Generator
	opts   llm.Options
	logger *logger.Logger
}

// New returns the analysis stage. gen may be nil.
func New(gen llm.Generator, opts llm.Options, log *logger.Logger) *Service {
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultMaxTokens
	}
	return &Service{gen: gen, opts: opts, logger: logger.OrNop(log).Named("analysis")}
}

func (s *Service) Analyze(ctx context.Context, in Input) (*model.Outline, error) {
	if in.Content == nil {
		return nil, errors.New(errors.ErrCodeAnalysis, "no extracted content to analyse")
	}
	in.Language = model.NormalizeLanguage(in.Language)

	if s.gen == nil {
		s.logger.Info("no AI generator, using fallback analysis", "file", in.FileName)
		return s.fallback(in), nil
	}

	reply, err := s.gen.Generate(ctx, buildPrompt(in), s.opts)
	if err != nil {
		metrics.IncAICall(stageName, "error")
		s.logger.Warn("AI analysis failed, using fallback", "file", in.FileName, "error", err)
		return s.fallback(in), nil
	}

	var raw rawOutline
	if err := llm.DecodeJSON(reply, &raw); err != nil {
		metrics.IncAICall(stageName, "unparsable")
		s.logger.Warn("AI analysis reply was not valid JSON, using fallback", "file", in.FileName, "error", err)
		return s.fallback(in), nil
	}
	if len(raw.Sections) == 0 {
		metrics.IncAICall(stageName, "unparsable")
		s.logger.Warn("AI analysis returned no sections, using fallback", "file", in.FileName)
		return s.fallback(in), nil
	}

	metrics.IncAICall(stageName, "ok")
	outline := normalize(raw, in)
	s.logger.Debug("AI analysis done", "file", in.FileName, "sections", len(outline.Sections))
	return outline, nil
}

func (s *Service) fallback(in Input) *model.Outline {
	metrics.IncFallback(stageName)
	return Fallback(in)
}

type rawSection struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Content            string   `json:"content"`
	BulletPoints       []string `json:"bulletPoints"`
	Importance         string   `json:"importance"`
	SuggestedSlideType string   `json:"suggestedSlideType"`
}

type rawOutline struct {
	Metadata struct {
		Title     string `json:"title"`
		Subtitle  string `json:"subtitle"`
		Author    string `json:"author"`
		MainTopic string `json:"mainTopic"`
	} `json:"metadata"`
	Sections              []rawSection        `json:"sections"`
	Keywords              []string            `json:"keywords"`
	Summary               string              `json:"summary"`
	DataElements          []model.DataElement `json:"dataElements"`
	RecommendedSlideCount json.Number         `json:"recommendedSlideCount"`
}

func normalize(raw rawOutline, in Input) *model.Outline {
	sections := make([]model.Section, 0, len(raw.Sections))
	for i, rs := range raw.Sections {
		sec := model.Section{
			ID:                 rs.ID,
			Title:              rs.Title,
			Content:            rs.Content,
			BulletPoints:       rs.BulletPoints,
			Importance:         model.Importance(rs.Importance),
			SuggestedSlideType: rs.SuggestedSlideType,
		}
		if sec.ID == "" {
			sec.ID = fmt.Sprintf("section_%d", i+1)
		}
		if sec.Title == "" {
			sec.Title = sectionLabel(in.Language, i+1)
		}
		if sec.BulletPoints == nil {
			sec.BulletPoints = []string{}
		}
		if len(sec.BulletPoints) > maxBullets {
			sec.BulletPoints = sec.BulletPoints[:maxBullets]
		}
		switch sec.Importance {
		case model.ImportanceHigh, model.ImportanceMedium, model.ImportanceLow:
		default:
			sec.Importance = model.ImportanceMedium
		}
		if sec.SuggestedSlideType == "" {
			sec.SuggestedSlideType = string(model.SlideBulletPoints)
		}
		sections = append(sections, sec)
	}

	title := raw.Metadata.Title
	if title == "" {
		title = util.BaseName(in.FileName)
	}

	keywords := raw.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	dataElements := raw.DataElements
	if dataElements == nil {
		dataElements = []model.DataElement{}
	}

	recommended := defaultSlideCount(len(sections))
	if n, err := raw.RecommendedSlideCount.Int64(); err == nil && n > 0 {
		recommended = int(n)
	}

	return &model.Outline{
		Metadata: model.OutlineMetadata{
			Title:     title,
			Subtitle:  raw.Metadata.Subtitle,
			Author:    raw.Metadata.Author,
			MainTopic: raw.Metadata.MainTopic,
			Language:  in.Language,
		},
		Sections:              sections,
		Keywords:              keywords,
		Summary:               raw.Summary,
		DataElements:          dataElements,
		RecommendedSlideCount: recommended,
	}
}

func defaultSlideCount(sections int) int {
	return min(10, sections+3)
}

func sectionLabel(lang model.Language, n int) string {
	if lang == model.LangEnglish {
		return fmt.Sprintf("Section %d", n)
	}
	return fmt.Sprintf("섹션 %d", n)
}
