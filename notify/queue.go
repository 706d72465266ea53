package notify

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/telemetry"
)

// Record is one active alert. It is owned exclusively by the Queue and
// removed when its TTL elapses or it is dismissed.
type Record struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Severity  telemetry.Severity `json:"severity"`
	CreatedAt time.Time          `json:"created_at"`
	TTL       time.Duration      `json:"ttl"`
}

// Queue holds active records newest-first, each with an independent expiry
// timer.
type Queue struct {
	clk      clock.Clock
	logger   zerolog.Logger
	mu       sync.Mutex
	records  []*Record
	timers   map[string]*clock.Timer
	onChange func(event string, rec Record)
}

func NewQueue(clk clock.Clock) *Queue {
	return &Queue{
		clk:    clk,
		logger: log.Logger("notify-queue"),
		timers: make(map[string]*clock.Timer),
	}
}

// OnChange registers a single observer invoked with "created" or "removed"
// events, outside the queue lock.
func (q *Queue) OnChange(fn func(event string, rec Record)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onChange = fn
}

// Push creates a record and arms its expiry timer, returning the stored copy.
func (q *Queue) Push(title, message string, severity telemetry.Severity, ttl time.Duration) Record {
	rec := &Record{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Severity:  severity,
		CreatedAt: q.clk.Now(),
		TTL:       ttl,
	}

	q.mu.Lock()
	q.records = append([]*Record{rec}, q.records...)
	id := rec.ID
	q.timers[id] = q.clk.AfterFunc(ttl, func() { q.remove(id, "expired") })
	fn := q.onChange
	snapshot := *rec
	q.mu.Unlock()

	q.logger.Debug().Str("id", rec.ID).Str("severity", string(severity)).Msgf("queued: %s", message)
	if fn != nil {
		fn("created", snapshot)
	}
	return snapshot
}

// Dismiss removes a record immediately. Unknown ids are a no-op.
func (q *Queue) Dismiss(id string) {
	q.remove(id, "dismissed")
}

func (q *Queue) remove(id, reason string) {
	q.mu.Lock()
	var removed *Record
	q.records = lo.Filter(q.records, func(r *Record, _ int) bool {
		if r.ID == id {
			removed = r
			return false
		}
		return true
	})
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	fn := q.onChange
	q.mu.Unlock()

	if removed == nil {
		return
	}
	q.logger.Debug().Str("id", id).Str("reason", reason).Msg("removed record")
	if fn != nil {
		fn("removed", *removed)
	}
}

// Active returns the current records, newest first.
func (q *Queue) Active() []Record {
	q.mu.Lock()
	defer q.mu.Unlock()
	return lo.Map(q.records, func(r *Record, _ int) Record { return *r })
}
