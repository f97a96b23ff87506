// Package keepalive defeats the hosting platform's idle shutdown by pinging
// the service's own /ping route on an interval. No correctness contract
// beyond issuing a harmless request now and then.
package keepalive

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/favhome/deliveries/internal/logger"
	"go.uber.org/zap"
)

const (
	pingInterval = 35 * time.Second
	pingTimeout  = 5 * time.Second
)

type Pinger struct {
	url        string
	httpClient *http.Client
}

func NewPinger(url string) *Pinger {
	return &Pinger{
		url:        url,
		httpClient: &http.Client{Timeout: pingTimeout},
	}
}

func (p *Pinger) Run(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Log.Debug("keepalive ping failed", zap.Error(err))
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
