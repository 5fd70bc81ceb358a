package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"docgen/internal/ai"
	"docgen/internal/analyzer"
	"docgen/internal/locator"
	"docgen/internal/model"
	"docgen/internal/rewriter"
	"docgen/internal/runlog"
)

// Options configures one generation run.
type Options struct {
	Style           ai.Style
	Language        ai.Language
	MaxEntities     int // 0 means unlimited
	ExcludePatterns []string
	SkipImports     []string // deny-listed import names, checked once per module
	DryRun          bool
}

// Orchestrator drives analyze → locate → generate → rewrite for every
// undocumented function and method, one entity at a time.
type Orchestrator struct {
	gen     ai.Generator
	log     *zap.SugaredLogger
	logPath string
}

func New(gen ai.Generator, rlog *runlog.Logger) *Orchestrator {
	o := &Orchestrator{gen: gen, log: zap.NewNop().Sugar()}
	if rlog != nil {
		o.log = rlog.SugaredLogger
		o.logPath = rlog.Path()
	}
	return o
}

// Run processes the project at projectDir in a fixed order: modules in
// discovery order, top-level functions first, then classes with their
// methods, everything in declaration order. A failing entity is counted
// and logged, never fatal; only the entity cap stops the run early.
func (o *Orchestrator) Run(ctx context.Context, projectDir string, opts Options) (*Report, error) {
	target, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		TargetDir: target,
		StartedAt: time.Now().Format(time.RFC3339),
		DryRun:    opts.DryRun,
		LogPath:   o.logPath,
	}

	modules, err := analyzer.Analyze(target, opts.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	o.log.Infow("run started", "target", target, "modules", len(modules), "dry_run", opts.DryRun)

	stop := false
	for _, m := range modules {
		denied := o.deniedImport(m, opts.SkipImports)

		for i := range m.Functions {
			if stop = o.handleEntity(ctx, report, m, nil, &m.Functions[i], denied, opts); stop {
				break
			}
		}
		if stop {
			break
		}

		for ci := range m.Classes {
			c := &m.Classes[ci]
			for fi := range c.Methods {
				if stop = o.handleEntity(ctx, report, m, c, &c.Methods[fi], denied, opts); stop {
					break
				}
			}
			if stop {
				break
			}
		}
		if stop {
			break
		}
	}

	report.FinishedAt = time.Now().Format(time.RFC3339)
	o.log.Infow("run finished",
		"scanned", report.Summary.Scanned,
		"generated", report.Summary.Generated,
		"skipped", report.Summary.Skipped,
		"errors", report.Summary.Errors,
	)
	return report, nil
}

// handleEntity processes one function or method and reports whether the
// generation cap has been reached.
func (o *Orchestrator) handleEntity(ctx context.Context, report *Report, m *model.Module, c *model.Class, fn *model.Function, denied string, opts Options) bool {
	report.Summary.Scanned++

	className := ""
	classLine := 0
	if c != nil {
		className = c.Name
		classLine = c.Line
	}
	fields := []any{"module", m.Name, "entity", fn.Name, "line", fn.Line}
	if className != "" {
		fields = append(fields, "class", className)
	}

	if fn.Documented() {
		report.Summary.Skipped++
		o.log.Infow("skipped: already documented", fields...)
		return false
	}
	if denied != "" {
		report.Summary.Skipped++
		o.log.Infow("skipped: deny-listed import in module", append(fields, "import", denied)...)
		return false
	}
	if opts.DryRun {
		report.Summary.Skipped++
		report.Results = append(report.Results, Result{
			Module:    m.Name,
			Path:      m.Path,
			Class:     className,
			Function:  fn.Name,
			Line:      fn.Line,
			Signature: fn.Signature(),
		})
		o.log.Infow("skipped: dry run", fields...)
		return false
	}

	doc, err := o.generateAndInsert(ctx, m, className, classLine, fn, opts)
	if err != nil {
		report.Summary.Errors++
		o.log.Errorw("generation failed", append(fields, "error", err.Error())...)
		return false
	}

	report.Summary.Generated++
	report.Results = append(report.Results, Result{
		Module:    m.Name,
		Path:      m.Path,
		Class:     className,
		Function:  fn.Name,
		Line:      fn.Line,
		Signature: fn.Signature(),
		Docstring: doc,
	})
	o.log.Infow("generated", fields...)

	return opts.MaxEntities > 0 && report.Summary.Generated >= opts.MaxEntities
}

// generateAndInsert re-locates the entity against the file's current
// contents, so line drift from earlier insertions into the same file
// cannot corrupt the splice.
func (o *Orchestrator) generateAndInsert(ctx context.Context, m *model.Module, className string, classLine int, fn *model.Function, opts Options) (string, error) {
	target, err := locator.Locate(m.Path, fn.Name, fn.Line, className, classLine)
	if err != nil {
		return "", err
	}
	if target == nil {
		return "", fmt.Errorf("entity not found in current file contents")
	}

	code, err := locator.Span(m.Path, target)
	if err != nil {
		return "", err
	}

	doc, err := o.gen.Generate(ctx, code, fn.Signature(), opts.Style, opts.Language)
	if err != nil {
		return "", err
	}

	if err := rewriter.InsertDocstring(m.Path, target, doc); err != nil {
		return "", err
	}
	return doc, nil
}

// deniedImport scans the module's raw source for deny-listed import names.
// A substring heuristic: "import X" or "from X " found anywhere in the
// file, comments and strings included.
func (o *Orchestrator) deniedImport(m *model.Module, names []string) string {
	if len(names) == 0 {
		return ""
	}
	src, err := os.ReadFile(m.Path)
	if err != nil {
		return ""
	}
	return MatchDeniedImport(string(src), names)
}
