package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"galbubble/pkg/game/bubble"
	"galbubble/pkg/game/config"
	"galbubble/pkg/game/gateway"
	"galbubble/pkg/game/rendercache"
)

// serve runs the render service until SIGINT or SIGTERM.
func serve(cfg config.Config, compositor *bubble.Compositor) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, closeCache := newCache(ctx, cfg.Cache)
	defer closeCache()

	g := gateway.New(compositor, gateway.Options{
		Cache:           cache,
		CachePrefix:     cfg.Cache.Prefix,
		RenderTimeout:   cfg.Server.RenderTimeout,
		MaxMessageBytes: cfg.Server.MaxMessageBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           g.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Sprites: %s", compositor.SpriteDir())
		log.Printf("[Server] Starting render service on %s", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[Server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCache picks the Redis store when one is configured and reachable, the
// in-memory store otherwise, or no cache when MemoryEntries is 0.
func newCache(ctx context.Context, cfg config.Cache) (rendercache.Store, func()) {
	noop := func() {}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.Printf("[Server] Cache: redis %s (ttl %s)", cfg.RedisAddr, cfg.TTL)
			return rendercache.NewRedis(client, cfg.TTL), func() { client.Close() }
		}
		log.Printf("[Server] Redis %s unreachable, falling back to memory cache: %v", cfg.RedisAddr, err)
		client.Close()
	}
	if cfg.MemoryEntries == 0 {
		log.Printf("[Server] Cache: disabled")
		return nil, noop
	}
	log.Printf("[Server] Cache: memory (%d entries)", cfg.MemoryEntries)
	return rendercache.NewMemory(cfg.MemoryEntries), noop
}
