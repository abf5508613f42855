// Package transform compiles the session's source files into
// browser-executable modules and builds the import map the preview
// document loads them through. Compilation is per-file: a syntax error
// in one file becomes a CompileError value and every other file still
// compiles.
package transform

import (
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Cyclone1070/forge/internal/config"
)

// Module is one compiled source file.
type Module struct {
	Path string
	Code string
	URL  string
}

// Result is the outcome of one pipeline run over a snapshot.
type Result struct {
	Modules    map[string]Module
	ImportMap  ImportMap
	EntryPoint string // empty when no entry candidate exists
	Errors     []*CompileError

	files map[string]string
	cfg   config.PreviewConfig
}

// Pipeline compiles snapshots. Safe to reuse across runs; each Run is
// independent.
type Pipeline struct {
	cfg    config.PreviewConfig
	logger *zap.Logger
}

func New(cfg config.PreviewConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// EntryPoint returns the first configured candidate present in the
// snapshot, or ErrNoEntryPoint.
func (p *Pipeline) EntryPoint(files map[string]string) (string, error) {
	for _, candidate := range p.cfg.EntryCandidates {
		if _, ok := files[candidate]; ok {
			return candidate, nil
		}
	}
	return "", ErrNoEntryPoint
}

// Run compiles every recognized source file in the snapshot and builds
// the import map. The result always covers whatever compiled, even when
// some files failed or no entry point exists.
func (p *Pipeline) Run(files map[string]string) *Result {
	result := &Result{
		Modules: make(map[string]Module),
		files:   files,
		cfg:     p.cfg,
	}

	paths := make([]string, 0, len(files))
	for fp := range files {
		paths = append(paths, fp)
	}
	sort.Strings(paths)

	urls := make(map[string]string)
	for _, fp := range paths {
		if !IsSource(fp) {
			continue
		}
		code, compileErr := compileFile(fp, files[fp])
		if compileErr != nil {
			p.logger.Debug("compile failed",
				zap.String("path", fp),
				zap.String("message", compileErr.Message))
			result.Errors = append(result.Errors, compileErr)
			continue
		}
		module := Module{Path: fp, Code: code, URL: moduleURL(code)}
		result.Modules[fp] = module
		urls[fp] = module.URL
	}

	result.ImportMap = buildImportMap(urls, files, p.cfg)

	if entry, err := p.EntryPoint(files); err == nil {
		result.EntryPoint = entry
	}

	p.logger.Debug("transform complete",
		zap.Int("modules", len(result.Modules)),
		zap.Int("errors", len(result.Errors)),
		zap.String("entry", result.EntryPoint))

	return result
}

// BlockingError returns the compile error that prevents the entry point
// from running: the entry's own error, or the first error reachable from
// it through imports. Nil when the entry's import closure compiled clean.
func (r *Result) BlockingError() *CompileError {
	if r.EntryPoint == "" {
		return nil
	}

	failed := make(map[string]*CompileError, len(r.Errors))
	for _, e := range r.Errors {
		failed[e.Path] = e
	}

	visited := make(map[string]bool)
	queue := []string{r.EntryPoint}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		if e, ok := failed[current]; ok {
			return e
		}

		source, ok := r.files[current]
		if !ok {
			continue
		}
		for _, spec := range scanImports(source) {
			if resolved, ok := r.resolve(current, spec); ok {
				queue = append(queue, resolved)
			}
		}
	}

	return nil
}

// resolve maps a specifier in importer to a snapshot path, trying the
// exact path and then each recognized extension.
func (r *Result) resolve(importer, spec string) (string, bool) {
	var base string
	switch {
	case strings.HasPrefix(spec, "/"):
		base = spec
	case strings.HasPrefix(spec, "./"), strings.HasPrefix(spec, "../"):
		base = path.Join(path.Dir(importer), spec)
	case strings.HasPrefix(spec, r.cfg.Alias+"/"):
		rest := strings.TrimPrefix(spec, r.cfg.Alias+"/")
		base = path.Join(r.cfg.SourceRoot, rest)
	default:
		return "", false
	}

	if _, ok := r.files[base]; ok {
		return base, true
	}
	for _, ext := range sourceExtensions {
		if _, ok := r.files[base+ext]; ok {
			return base + ext, true
		}
	}
	return "", false
}
