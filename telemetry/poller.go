package telemetry

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/cloud"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/configs"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
)

// Poller owns the polling cadence against the farm service and the
// current/previous snapshot pair every downstream component reads. Each tick
// is an independent attempt; a response that resolves late simply overwrites
// whatever a newer tick stored first (accepted race, no sequence numbers).
type Poller struct {
	client cloud.Client
	clk    clock.Clock
	cfg    configs.PollConfig
	logger zerolog.Logger

	mu        sync.Mutex
	current   *SensorSnapshot
	previous  *SensorSnapshot
	connected bool
	history   []cloud.RawSnapshot
	onUpdate  func(prev *SensorSnapshot, cur SensorSnapshot)

	cron *cron.Cron
}

func NewPoller(client cloud.Client, clk clock.Clock, cfg configs.PollConfig) *Poller {
	return &Poller{
		client: client,
		clk:    clk,
		cfg:    cfg,
		logger: log.Logger("poller"),
	}
}

// OnUpdate registers the single observer called after every snapshot update,
// outside the poller lock. prev is nil on the first update.
func (p *Poller) OnUpdate(fn func(prev *SensorSnapshot, cur SensorSnapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onUpdate = fn
}

// Start launches the snapshot tick loop and the slower history schedule. It
// returns immediately; loops stop when ctx is done.
func (p *Poller) Start(ctx context.Context) {
	p.FetchHistory()
	p.Poll()

	ticker := p.clk.Ticker(p.cfg.SnapshotInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Poll()
			}
		}
	}()

	p.cron = cron.New()
	if _, err := p.cron.AddFunc(p.cfg.HistorySchedule, p.FetchHistory); err != nil {
		p.logger.Error().Msgf("invalid history schedule %q: %s", p.cfg.HistorySchedule, err)
	} else {
		p.cron.Start()
		go func() {
			<-ctx.Done()
			p.cron.Stop()
		}()
	}
}

// Poll performs one latest-snapshot attempt. On failure the poller marks the
// connection lost and falls back to the newest entry of the last successful
// history fetch; with no history either, the previous state is retained.
func (p *Poller) Poll() {
	raw, err := p.client.GetLatestSnapshot()
	if err != nil {
		p.logger.Warn().Msgf("snapshot fetch failed: %s", err)
		p.fallbackToHistory()
		return
	}
	snap := Normalize(raw, p.clk.Now())
	p.store(snap, true)
}

func (p *Poller) fallbackToHistory() {
	p.mu.Lock()
	var raw cloud.RawSnapshot
	if len(p.history) > 0 {
		raw = p.history[0]
	}
	p.mu.Unlock()

	if raw == nil {
		p.mu.Lock()
		p.connected = false
		p.mu.Unlock()
		return
	}
	snap := Normalize(raw, p.clk.Now())
	p.store(snap, false)
}

func (p *Poller) store(snap SensorSnapshot, connected bool) {
	p.mu.Lock()
	p.previous = p.current
	p.current = &snap
	p.connected = connected
	prev := p.previous
	fn := p.onUpdate
	p.mu.Unlock()

	if fn != nil {
		fn(prev, snap)
	}
}

// FetchHistory refreshes the bounded recent-readings window used for the
// offline fallback and the recent-readings table.
func (p *Poller) FetchHistory() {
	entries, err := p.client.GetHistory(p.cfg.HistoryHours, p.cfg.HistoryLimit)
	if err != nil {
		p.logger.Warn().Msgf("history fetch failed: %s", err)
		return
	}
	p.mu.Lock()
	p.history = entries
	p.mu.Unlock()
}

// RequestRefresh schedules an out-of-band poll shortly in the future, used
// after relay commands settle so observed relay state reconciles quickly.
func (p *Poller) RequestRefresh() {
	p.clk.AfterFunc(p.cfg.RefreshDelay, p.Poll)
}

// Current returns the newest snapshot (nil before the first successful poll
// or fallback) and the connectivity flag.
func (p *Poller) Current() (*SensorSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, p.connected
	}
	snap := *p.current
	return &snap, p.connected
}

// History returns the raw entries of the last successful history fetch,
// newest first.
func (p *Poller) History() []cloud.RawSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]cloud.RawSnapshot, len(p.history))
	copy(out, p.history)
	return out
}
