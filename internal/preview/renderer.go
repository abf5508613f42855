// Package preview assembles the self-contained HTML document rendered
// inside the host's sandboxed iframe. Every call rebuilds the whole
// document from a snapshot; nothing is patched incrementally.
package preview

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Cyclone1070/forge/internal/config"
	"github.com/Cyclone1070/forge/internal/transform"
)

// Renderer turns VFS snapshots into preview documents. Compile failures
// and a missing entry point are rendered states, not Go errors: the
// document always loads.
type Renderer struct {
	pipeline *transform.Pipeline
	logger   *zap.Logger
}

func New(cfg config.PreviewConfig, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		pipeline: transform.New(cfg, logger),
		logger:   logger,
	}
}

// Render compiles the snapshot and builds the full document string. The
// error return is reserved for internal assembly failures; user-caused
// problems (syntax errors, no entry point) come back as rendered
// documents.
func (r *Renderer) Render(files map[string]string) (string, error) {
	result := r.pipeline.Run(files)

	if result.EntryPoint == "" {
		r.logger.Debug("rendering no-entry document")
		return renderMessage("No entry point",
			"Create one of /App.jsx, /App.tsx, /index.jsx or /index.tsx to see a preview.")
	}

	if blocking := result.BlockingError(); blocking != nil {
		r.logger.Debug("rendering compile error document",
			zap.String("path", blocking.Path))
		return renderCompileError(blocking)
	}

	importMapJSON, err := json.MarshalIndent(result.ImportMap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal import map: %w", err)
	}

	data := documentData{
		ImportMap:  template.JS(importMapJSON),
		EntryPoint: template.JS(strconv.Quote(result.EntryPoint)),
		Styles:     collectStyles(files),
	}

	var b strings.Builder
	if err := documentTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render preview document: %w", err)
	}
	return b.String(), nil
}

// collectStyles gathers every .css file in the snapshot, sorted by path
// so the cascade order is stable.
func collectStyles(files map[string]string) []template.CSS {
	var paths []string
	for p := range files {
		if path.Ext(p) == ".css" {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	styles := make([]template.CSS, 0, len(paths))
	for _, p := range paths {
		styles = append(styles, template.CSS(files[p]))
	}
	return styles
}

type documentData struct {
	ImportMap  template.JS
	EntryPoint template.JS
	Styles     []template.CSS
}

var documentTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<script type="importmap">
{{.ImportMap}}
</script>
{{range .Styles}}<style>
{{.}}
</style>
{{end}}</head>
<body>
<div id="root"></div>
<script type="module">
import { createElement } from "react";
import { createRoot } from "react-dom/client";
import App from {{.EntryPoint}};
createRoot(document.getElementById("root")).render(createElement(App));
</script>
</body>
</html>
`))

type errorData struct {
	Title    string
	Location string
	Message  string
}

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: monospace; background: #1e1e1e; color: #f48771; padding: 2rem; }
h1 { font-size: 1rem; color: #cccccc; }
pre { white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Location}}<p>{{.Location}}</p>
{{end}}<pre>{{.Message}}</pre>
</body>
</html>
`))

func renderCompileError(e *transform.CompileError) (string, error) {
	data := errorData{
		Title:   "Build failed",
		Message: e.Message,
	}
	if e.Line > 0 {
		data.Location = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	} else {
		data.Location = e.Path
	}

	var b strings.Builder
	if err := errorTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render error document: %w", err)
	}
	return b.String(), nil
}

func renderMessage(title, message string) (string, error) {
	var b strings.Builder
	err := errorTemplate.Execute(&b, errorData{Title: title, Message: message})
	if err != nil {
		return "", fmt.Errorf("render message document: %w", err)
	}
	return b.String(), nil
}
