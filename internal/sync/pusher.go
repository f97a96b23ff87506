package sync

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/favhome/deliveries/internal/logger"
	"github.com/favhome/deliveries/internal/mirror"
	"go.uber.org/zap"
)

const (
	maxPushAttempts = 3
	initialBackoff  = 2 * time.Second
)

// Pusher mirrors the local database to the remote after every mutation.
// Notify never blocks the request path: signals land in a one-slot channel,
// so a burst of mutations coalesces into a single push of the latest file.
type Pusher struct {
	client     mirror.ClientInterface
	dbPath     string
	remotePath string
	notify     chan struct{}
}

func NewPusher(client mirror.ClientInterface, dbPath, remotePath string) *Pusher {
	return &Pusher{
		client:     client,
		dbPath:     dbPath,
		remotePath: remotePath,
		notify:     make(chan struct{}, 1),
	}
}

// Notify schedules a push of the current database file. Safe to call from
// request handlers; failures of the eventual push are invisible to callers.
func (p *Pusher) Notify() {
	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Run processes push signals until the context is cancelled.
func (p *Pusher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.notify:
			p.push(ctx)
		}
	}
}

func (p *Pusher) push(ctx context.Context) {
	if !p.client.Enabled() {
		return
	}

	content, err := os.ReadFile(p.dbPath)
	if err != nil {
		logger.Log.Error("push: failed to read local database", zap.Error(err))
		return
	}

	backoff := initialBackoff
	for attempt := 1; attempt <= maxPushAttempts; attempt++ {
		// Refetch the current revision each attempt so a stale sha from a
		// rejected write does not poison the retry.
		var sha string
		if remote, found, err := p.client.Fetch(ctx); err != nil {
			logger.Log.Warn("push: failed to fetch remote revision", zap.Error(err))
		} else if found {
			sha = remote.SHA
		}

		message := fmt.Sprintf("update database %s", time.Now().UTC().Format(backupTimeFormat))
		err = p.client.Put(ctx, p.remotePath, content, message, sha)
		if err == nil {
			logger.Log.Info("push: database mirrored", zap.Int("attempt", attempt))
			return
		}

		logger.Log.Warn("push: upload failed", zap.Int("attempt", attempt), zap.Error(err))
		if attempt == maxPushAttempts {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}
