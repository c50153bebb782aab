// Package ppt writes a VisualSpec out as an Office Open XML presentation.
package ppt

import (
	"bytes"
	"context"
	"time"

	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

type Service struct {
	logger *logger.Logger
	now    func() time.Time
}

func New(log *logger.Logger) *Service {
	return &Service{
		logger: logger.OrNop(log).Named("ppt"),
		now:    time.Now,
	}
}

// OutputName derives the download name from the uploaded file name.
func OutputName(source string) string {
	base := util.BaseName(source)
	if base == "" || base == "." || base == "/" {
		return "presentation.pptx"
	}
	return base + "_presentation.pptx"
}

// Build renders spec into an in-memory .pptx named after fileName.
func (s *Service) Build(ctx context.Context, spec *model.VisualSpec, fileName string) (*model.BuiltFile, error) {
	if spec == nil {
		return nil, errors.New(errors.ErrCodePPTBuild, "no visual spec to build")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePPTBuild, "build cancelled")
	}

	start := s.now()
	theme := spec.Theme
	d := &deck{
		title: util.BaseName(fileName),
		theme: &theme,
		now:   start,
	}
	d.build(spec)

	var buf bytes.Buffer
	if err := d.writeZip(&buf); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePPTBuild, "failed to write presentation")
	}

	elapsed := s.now().Sub(start)
	s.logger.Info("presentation built",
		"slides", d.slides,
		"charts", d.charts,
		"bytes", buf.Len(),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return &model.BuiltFile{
		Buffer:   buf.Bytes(),
		FileName: OutputName(fileName),
		Size:     buf.Len(),
		MimeType: model.PPTXMimeType,
		Stats: model.BuildStats{
			TotalSlides:    d.slides,
			GenerationTime: elapsed,
		},
	}, nil
}
