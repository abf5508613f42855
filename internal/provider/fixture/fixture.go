// Package fixture provides a scripted Generator for offline development
// and tests. Each Generate call plays back the next scripted turn, so a
// full generation session can run without network access or credentials.
package fixture

import (
	"context"
	"sync"

	"github.com/Cyclone1070/forge/internal/provider"
	"github.com/Cyclone1070/forge/internal/tool"
)

// Turn is one scripted model response.
type Turn struct {
	Text  string
	Calls []tool.Call
}

// Generator replays a fixed script of turns in order. Once the script is
// exhausted every further Generate returns an empty response.
type Generator struct {
	mu    sync.Mutex
	turns []Turn
	next  int
}

// New creates a Generator that plays back the given turns.
func New(turns ...Turn) *Generator {
	return &Generator{turns: turns}
}

// Generate returns the next scripted turn. The prompt and history are
// ignored; scripts encode the whole conversation up front.
func (g *Generator) Generate(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.next >= len(g.turns) {
		return &provider.Response{Calls: provider.NewCallStream(nil)}, nil
	}

	turn := g.turns[g.next]
	g.next++
	return &provider.Response{
		Text:  turn.Text,
		Calls: provider.NewCallStream(turn.Calls),
	}, nil
}

// Remaining reports how many scripted turns have not been played yet.
func (g *Generator) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.turns) - g.next
}
