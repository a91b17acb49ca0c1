// Package gateway serves bubble renders over HTTP and WebSocket.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"galbubble/pkg/game/bubble"
	"galbubble/pkg/game/character"
	"galbubble/pkg/game/rendercache"
)

// ErrTimeout is returned when a render does not finish within the configured limit.
var ErrTimeout = errors.New("render timed out")

// Renderer produces encoded images. *bubble.Compositor satisfies it.
type Renderer interface {
	Render(req bubble.Request) ([]byte, error)
}

// Options tunes a Gateway. Zero values pick defaults.
type Options struct {
	Cache           rendercache.Store
	CachePrefix     string
	RenderTimeout   time.Duration
	MaxMessageBytes int64
	Logger          *log.Logger
}

// Gateway renders requests with a time limit and an optional cache, and
// tracks live WebSocket connections.
type Gateway struct {
	renderer Renderer
	cache    rendercache.Store
	prefix   string
	timeout  time.Duration
	maxBytes int64
	logger   *log.Logger

	mu          sync.RWMutex
	connections map[string]*Connection
	nextConnID  uint64

	renders   atomic.Uint64
	cacheHits atomic.Uint64
}

// New creates a Gateway around r.
func New(r Renderer, opts Options) *Gateway {
	g := &Gateway{
		renderer:    r,
		cache:       opts.Cache,
		prefix:      opts.CachePrefix,
		timeout:     opts.RenderTimeout,
		maxBytes:    opts.MaxMessageBytes,
		logger:      opts.Logger,
		connections: make(map[string]*Connection),
	}
	if g.prefix == "" {
		g.prefix = "galbubble"
	}
	if g.timeout <= 0 {
		g.timeout = 10 * time.Second
	}
	if g.maxBytes <= 0 {
		g.maxBytes = 64 << 10
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	return g
}

// Handler returns the service routes.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/render", g.HandleRender)
	mux.HandleFunc("/ws", g.HandleWebSocket)
	mux.HandleFunc("/health", g.HandleHealth)
	return mux
}

// Render resolves req, consults the cache and renders with a time limit. A
// render that overruns is abandoned; its result is discarded when it finishes.
func (g *Gateway) Render(ctx context.Context, req bubble.Request) ([]byte, error) {
	req, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	key, err := rendercache.Key(g.prefix, req)
	if err != nil {
		return nil, err
	}
	if g.cache != nil {
		data, ok, err := g.cache.Get(ctx, key)
		switch {
		case err != nil:
			g.logger.Printf("[Gateway] Cache lookup failed: %v", err)
		case ok:
			g.cacheHits.Add(1)
			return data, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := g.renderer.Render(req)
		done <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, g.timeout)
		}
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		g.renders.Add(1)
		if g.cache != nil {
			if err := g.cache.Put(ctx, key, r.data); err != nil {
				g.logger.Printf("[Gateway] Cache store failed: %v", err)
			}
		}
		return r.data, nil
	}
}

// HandleRender serves POST /render: JSON request in, PNG out.
func (g *Gateway) HandleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, errors.New("use POST"))
		return
	}

	var req bubble.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, g.maxBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	data, err := g.Render(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			g.logger.Printf("[Gateway] Render failed: %v", err)
		}
		writeError(w, status, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HandleHealth reports liveness and counters.
func (g *Gateway) HandleHealth(w http.ResponseWriter, r *http.Request) {
	g.mu.RLock()
	conns := len(g.connections)
	g.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":      "ok",
		"renders":     g.renders.Load(),
		"cache_hits":  g.cacheHits.Load(),
		"connections": conns,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, character.ErrUnknownPersonality), errors.Is(err, character.ErrUnknownEmotion):
		return http.StatusBadRequest
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
