package engine

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/configs"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/notify"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/relay"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/telemetry"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rule_evaluations_total",
		Help: "Evaluation cycles run, by trigger.",
	}, []string{"trigger"})
	notificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_emitted_total",
		Help: "Notification records emitted after dedup.",
	})
)

// Engine drives the evaluation cycle: periodic re-evaluation of the current
// snapshot, plus debounced immediate evaluations when the change detector
// flags a significant move between consecutive snapshots.
type Engine struct {
	poller     *telemetry.Poller
	store      *notify.Store
	queue      *notify.Queue
	dispatcher *relay.Dispatcher
	clk        clock.Clock
	pollCfg    configs.PollConfig
	notifyCfg  configs.NotifyConfig
	logger     zerolog.Logger

	mu            sync.Mutex
	lastImmediate time.Time
}

func New(poller *telemetry.Poller, store *notify.Store, queue *notify.Queue,
	dispatcher *relay.Dispatcher, clk clock.Clock,
	pollCfg configs.PollConfig, notifyCfg configs.NotifyConfig) *Engine {
	e := &Engine{
		poller:     poller,
		store:      store,
		queue:      queue,
		dispatcher: dispatcher,
		clk:        clk,
		pollCfg:    pollCfg,
		notifyCfg:  notifyCfg,
		logger:     log.Logger("engine"),
	}
	poller.OnUpdate(e.onSnapshot)
	return e
}

// Start launches the periodic evaluation loop; it returns immediately.
func (e *Engine) Start(ctx context.Context) {
	ticker := e.clk.Ticker(e.pollCfg.EvalInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if snap, _ := e.poller.Current(); snap != nil {
					e.Evaluate(*snap, "periodic")
				}
			}
		}
	}()
}

// onSnapshot runs on every poller update: reconcile relay state, then decide
// whether the move since the previous snapshot warrants an immediate
// out-of-cycle evaluation. Immediate evaluations are debounced; a suppressed
// change simply folds into the next periodic cycle.
func (e *Engine) onSnapshot(prev *telemetry.SensorSnapshot, cur telemetry.SensorSnapshot) {
	e.dispatcher.Reconcile(cur)

	if prev == nil || !telemetry.SignificantChange(*prev, cur) {
		return
	}
	e.mu.Lock()
	now := e.clk.Now()
	if now.Sub(e.lastImmediate) < e.pollCfg.DebounceWindow {
		e.mu.Unlock()
		e.logger.Debug().Msg("significant change within debounce window, folding into next cycle")
		return
	}
	e.lastImmediate = now
	e.mu.Unlock()

	e.Evaluate(cur, "change")
}

type candidate struct {
	identity notify.Identity
	title    string
	message  string
	severity telemetry.Severity
}

// Evaluate runs one full cycle against snap: per-metric assessments,
// compound conditions, dedup sweep, then queue pushes for fresh identities.
func (e *Engine) Evaluate(snap telemetry.SensorSnapshot, trigger string) {
	evaluationsTotal.WithLabelValues(trigger).Inc()

	assessments := telemetry.EvaluateAll(snap)
	compounds := telemetry.EvaluateCompound(snap)

	candidates := make([]candidate, 0, len(assessments)+len(compounds))
	for _, a := range assessments {
		if a.Severity == telemetry.SeverityGood {
			continue
		}
		candidates = append(candidates, candidate{
			identity: notify.MetricIdentity(a),
			title:    metricTitle(a.MetricName),
			message:  assessmentMessage(a),
			severity: a.Severity,
		})
	}
	for _, c := range compounds {
		candidates = append(candidates, candidate{
			identity: notify.CompoundIdentity(c),
			title:    c.Title,
			message:  c.Description + ". " + c.RecommendedAction,
			severity: c.Severity,
		})
	}

	identities := make([]notify.Identity, len(candidates))
	for i, c := range candidates {
		identities[i] = c.identity
	}
	fresh := e.store.Sweep(identities)
	if len(fresh) == 0 {
		return
	}

	freshSet := make(map[notify.Identity]struct{}, len(fresh))
	for _, id := range fresh {
		freshSet[id] = struct{}{}
	}
	for _, c := range candidates {
		if _, ok := freshSet[c.identity]; !ok {
			continue
		}
		delete(freshSet, c.identity)
		e.queue.Push(c.title, c.message, c.severity, e.ttlFor(c.severity))
		notificationsTotal.Inc()
	}
	e.logger.Info().Int("fresh", len(fresh)).Str("trigger", trigger).Msg("evaluation cycle surfaced alerts")
}

func (e *Engine) ttlFor(severity telemetry.Severity) time.Duration {
	if severity == telemetry.SeverityDanger {
		return e.notifyCfg.DangerTTL
	}
	return e.notifyCfg.WarningTTL
}

func assessmentMessage(a telemetry.ConditionAssessment) string {
	if !a.Value.Valid {
		return a.StatusLabel + ". " + a.RecommendedAction
	}
	return a.StatusLabel + " (" + a.Value.String() + a.Unit + "). " + a.RecommendedAction
}

var metricTitles = map[string]string{
	"temperature":  "Temperature",
	"humidity":     "Humidity",
	"soilMoisture": "Soil moisture",
	"waterQuality": "Water quality",
	"gasLevel":     "Air quality",
	"light":        "Light",
	"motion":       "Motion",
}

func metricTitle(metric string) string {
	if t, ok := metricTitles[metric]; ok {
		return t
	}
	return metric
}
