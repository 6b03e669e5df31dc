package app

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/bsj5/profilecard/internal/lanyard"
	"github.com/bsj5/profilecard/internal/state"
)

const defaultPollInterval = 5 * time.Second

// TickResult is the outcome of one poll.
type TickResult int

const (
	TickFailed TickResult = iota
	TickUnchanged
	TickChanged
)

func (r TickResult) String() string {
	switch r {
	case TickFailed:
		return "failed"
	case TickUnchanged:
		return "unchanged"
	case TickChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// Poller fetches the presence document on a fixed cadence and hands every
// changed document to its sink. The last document is owned by the goroutine
// running Run; Tick must not be called concurrently with it.
type Poller struct {
	fetcher  lanyard.PresenceFetcher
	userID   string
	store    *state.Store
	interval time.Duration
	logger   *log.Logger
	notify   func(lanyard.Document)

	limiter *rate.Limiter
	refresh chan struct{}

	last *lanyard.Document
}

// NewPoller wires a poller. A nil store or logger is replaced with a private
// one, and a non-positive interval uses the default.
func NewPoller(fetcher lanyard.PresenceFetcher, userID string, store *state.Store, interval time.Duration, logger *log.Logger, notify func(lanyard.Document)) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if store == nil {
		store = &state.Store{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Poller{
		fetcher:  fetcher,
		userID:   userID,
		store:    store,
		interval: interval,
		logger:   logger,
		notify:   notify,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		refresh:  make(chan struct{}, 1),
	}
}

// Run polls immediately and then on every tick until ctx is cancelled. A
// slow fetch delays the next tick; missed ticks are dropped.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.Tick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.refresh:
			ticker.Reset(p.interval)
		}
	}
}

// Tick runs one poll. Failures are recorded and logged and leave the last
// document in place.
func (p *Poller) Tick(ctx context.Context) TickResult {
	doc, err := p.fetcher.FetchPresence(ctx, p.userID)
	if err != nil {
		if ctx.Err() != nil {
			return TickFailed
		}
		p.store.Update(nil, err)
		p.logger.Warn("presence poll failed", "user", p.userID, "err", err)
		return TickFailed
	}
	p.store.Update(doc, nil)

	if p.last != nil && p.last.Equal(*doc) {
		p.logger.Debug("presence unchanged")
		return TickUnchanged
	}
	p.last = doc
	p.logger.Info("presence changed",
		"status", doc.Data.DiscordStatus,
		"activities", len(doc.Data.Activities),
		"success", doc.Success,
	)
	if p.notify != nil {
		p.notify(*doc)
	}
	return TickChanged
}

// Refresh asks Run for an extra poll. Requests beyond one per second are
// dropped and reported as false.
func (p *Poller) Refresh() bool {
	if !p.limiter.Allow() {
		p.logger.Debug("refresh throttled")
		return false
	}
	select {
	case p.refresh <- struct{}{}:
	default:
	}
	return true
}
