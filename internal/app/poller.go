package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/lamplight/client"
	"github.com/five82/lamplight/internal/state"
)

const defaultPollInterval = 30 * time.Second

// Poller refreshes a state.Store from one fetch query.
type Poller struct {
	trigger chan struct{}
	done    chan struct{}
}

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence and whenever Refresh is called. It returns immediately. A zero
// or negative interval polls only on demand.
func StartPoller(ctx context.Context, store *state.Store, fetcher client.Fetcher, query client.FetchQuery, interval time.Duration, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Poller{trigger: make(chan struct{}, 1), done: make(chan struct{})}
	go func() {
		defer close(p.done)

		var tick <-chan time.Time
		if interval > 0 {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			refresh(ctx, store, fetcher, query, logger)
			select {
			case <-ctx.Done():
				return
			case <-tick:
			case <-p.trigger:
			}
		}
	}()
	return p
}

// Refresh asks for an immediate fetch. Requests made while one is pending
// are coalesced.
func (p *Poller) Refresh() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Done is closed once the poller goroutine has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func refresh(ctx context.Context, store *state.Store, fetcher client.Fetcher, query client.FetchQuery, logger *zap.Logger) {
	if ctx.Err() != nil {
		return
	}
	rs, err := fetcher.Fetch(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		store.Update(nil, err)
		logger.Warn("record poll failed", zap.String("action", query.Action), zap.Error(err))
		return
	}
	store.Update(rs, nil)
}
