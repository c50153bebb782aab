package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LuckyTW/ppt-creator/internal/app"
	"github.com/LuckyTW/ppt-creator/internal/infra/config"
	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/extract"
	"github.com/LuckyTW/ppt-creator/internal/service/orchestrator"
	"github.com/LuckyTW/ppt-creator/internal/service/ppt"
	"github.com/LuckyTW/ppt-creator/internal/service/theme"
)

var (
	convertOutput string
	convertTheme  string
	convertLang   string
	convertSlides int
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a document into a presentation",
	Long: `Convert a .txt, .md or .markdown document into a .pptx presentation.

Examples:
  deckgen convert notes.md
  deckgen convert report.txt -o q3.pptx --theme corporate-dark --lang en --slides 8`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output path (default <name>_presentation.pptx)")
	convertCmd.Flags().StringVar(&convertTheme, "theme", theme.DefaultID, "theme id, see 'deckgen themes'")
	convertCmd.Flags().StringVar(&convertLang, "lang", string(model.LangKorean), "deck language (ko|en)")
	convertCmd.Flags().IntVar(&convertSlides, "slides", 0, "target slide count (0 = automatic)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !theme.Exists(convertTheme) {
		return fmt.Errorf("unknown theme %q", convertTheme)
	}
	lang := model.Language(convertLang)
	if lang != model.LangKorean && lang != model.LangEnglish {
		return fmt.Errorf("unsupported language %q", convertLang)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	content, err := extract.Extract(data, filepath.Base(path))
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// the CLI never shares blobs with a server
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath, err = os.MkdirTemp("", "deckgen-")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(cfg.Storage.BasePath)

	log := logger.NewNop()
	if verbose {
		if log, err = logger.New("debug", "console"); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	lastProgress := -1
	onProgress := func(job *model.Job) {
		if job.Progress != lastProgress || job.IsTerminal() {
			lastProgress = job.Progress
			fmt.Fprintf(out, "[%3d%%] %s %s\n", job.Progress, job.Status, job.CurrentStage)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg, log, onProgress)
	if err != nil {
		return err
	}
	if !a.AIEnabled {
		fmt.Fprintln(out, "No AI key configured, using offline fallbacks.")
	}

	_, h := a.Orchestrator.Start(ctx, orchestrator.Input{
		FileName: filepath.Base(path),
		Content:  content,
		Options: model.GenerationOptions{
			Theme:      convertTheme,
			SlideCount: convertSlides,
			Language:   lang,
		},
	})
	res, err := h.Wait(ctx)
	if err != nil {
		return err
	}
	if res.Err != nil {
		return fmt.Errorf("generation failed: %s", res.Job.Error)
	}

	obj, err := a.Store.Get(ctx, res.ResultID)
	if err != nil {
		return err
	}

	target := convertOutput
	if target == "" {
		target = filepath.Join(filepath.Dir(path), ppt.OutputName(path))
	}
	if !strings.EqualFold(filepath.Ext(target), ".pptx") {
		target += ".pptx"
	}
	if err := os.WriteFile(target, obj.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(out, "Wrote %s (%d bytes)\n", target, len(obj.Data))
	return nil
}
