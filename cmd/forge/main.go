// Package main runs one generation session headlessly: it sends a prompt
// through the configured generator, applies the resulting tool calls to a
// fresh in-memory file tree, and writes the rendered preview document to
// disk. The real chat UI lives in the host application; this binary is
// the integration surface for everything underneath it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/Cyclone1070/forge/internal/config"
	"github.com/Cyclone1070/forge/internal/preview"
	"github.com/Cyclone1070/forge/internal/provider"
	"github.com/Cyclone1070/forge/internal/provider/fixture"
	"github.com/Cyclone1070/forge/internal/provider/gemini"
	"github.com/Cyclone1070/forge/internal/session"
	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/Cyclone1070/forge/internal/tool/editor"
	"github.com/Cyclone1070/forge/internal/tool/project"
	"github.com/Cyclone1070/forge/internal/vfs"
	"github.com/Cyclone1070/forge/internal/workflow"
	"github.com/Cyclone1070/forge/internal/workflow/apply"
	"github.com/Cyclone1070/forge/internal/workflow/loop"
	"github.com/Cyclone1070/forge/internal/workflow/toolmanager"
)

// Dependencies holds everything run needs, so tests can swap any part.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Generator provider.Generator
}

func main() {
	prompt := flag.String("prompt", "", "what to build")
	scriptPath := flag.String("script", "", "path to a fixture script (JSON turns); skips the live API")
	model := flag.String("model", "gemini-2.0-flash", "Gemini model name")
	outPath := flag.String("out", "preview.html", "where to write the rendered preview document")
	sessionPath := flag.String("session", "", "optional path to write the session blob")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if *prompt == "" && *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: forge -prompt \"...\" [-script fixture.json] [-out preview.html]")
		os.Exit(1)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	gen, err := newGenerator(ctx, *scriptPath, *model)
	if err != nil {
		logger.Fatal("create generator", zap.Error(err))
	}

	deps := Dependencies{Config: cfg, Logger: logger, Generator: gen}
	if err := run(ctx, deps, *prompt, *outPath, *sessionPath); err != nil {
		logger.Fatal("session failed", zap.Error(err))
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newGenerator injects the provider explicitly: a script file selects
// the deterministic fixture, otherwise the live Gemini API is used.
func newGenerator(ctx context.Context, scriptPath, model string) (provider.Generator, error) {
	if scriptPath != "" {
		turns, err := loadScript(scriptPath)
		if err != nil {
			return nil, err
		}
		return fixture.New(turns...), nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required (or pass -script)")
	}

	client, err := gemini.NewRealGeminiClient(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	gen := gemini.New(client, model)
	gen.DefineTools(tool.Declarations())
	return gen, nil
}

func loadScript(path string) ([]fixture.Turn, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var turns []fixture.Turn
	if err := json.Unmarshal(blob, &turns); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return turns, nil
}

func run(ctx context.Context, deps Dependencies, prompt, outPath, sessionPath string) error {
	fs := vfs.New()

	tools := toolmanager.New(
		editor.New(fs, deps.Config),
		project.New(fs),
	)

	changes := fs.Watch().Subscribe()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for change := range changes {
			deps.Logger.Debug("tree changed",
				zap.String("kind", string(change.Kind)),
				zap.String("path", change.Path))
		}
	}()

	events := make(chan workflow.Event, 64)
	wg.Add(1)
	go func() {
		defer wg.Done()
		reportEvents(events, deps.Logger)
	}()

	applier := apply.New(tools, events, deps.Config.Tools.MaxStreamCalls, deps.Logger)
	l := loop.NewLoop(deps.Generator, applier, events, 16)

	runErr := l.Run(ctx, prompt)
	close(events)
	fs.Watch().Unsubscribe(changes)
	wg.Wait()
	if runErr != nil {
		return runErr
	}

	renderer := preview.New(deps.Config.Preview, deps.Logger)
	doc, err := renderer.Render(fs.Files())
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	deps.Logger.Info("preview written", zap.String("path", outPath))

	if sessionPath != "" {
		sess, err := session.New(fs, []provider.Message{
			{Role: provider.RoleUser, Content: prompt},
		})
		if err != nil {
			return err
		}
		blob, err := sess.Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(sessionPath, blob, 0o644); err != nil {
			return fmt.Errorf("write session: %w", err)
		}
		deps.Logger.Info("session written", zap.String("path", sessionPath))
	}

	return nil
}

// reportEvents drains the event channel, logging progress the way the
// host UI would render it.
func reportEvents(events <-chan workflow.Event, logger *zap.Logger) {
	for event := range events {
		switch e := event.(type) {
		case workflow.TextEvent:
			fmt.Println(e.Text)
		case workflow.ToolStartEvent:
			logger.Info("tool start", zap.String("tool", e.ToolName), zap.String("path", e.Path))
		case workflow.ToolEndEvent:
			if e.Err != "" {
				logger.Warn("tool failed", zap.String("tool", e.ToolName), zap.String("error", e.Err))
				continue
			}
			switch d := e.Display.(type) {
			case tool.StringDisplay:
				logger.Info("tool done", zap.String("tool", e.ToolName), zap.String("result", string(d)))
			case tool.DiffDisplay:
				logger.Info("tool done", zap.String("tool", e.ToolName),
					zap.Int("added", d.AddedLines), zap.Int("removed", d.RemovedLines))
			case tool.ListingDisplay:
				logger.Info("tool done", zap.String("tool", e.ToolName),
					zap.String("path", d.Path), zap.Int("entries", len(d.Entries)))
			}
		case workflow.PreviewEvent:
			logger.Info("files changed", zap.Strings("paths", e.ChangedPaths))
		case workflow.DoneEvent:
			logger.Info("generation complete")
		}
	}
}
