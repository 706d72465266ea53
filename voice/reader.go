package voice

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/notify"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/speech"
)

// Reader reads the active alert list aloud, one utterance per record, newest
// first, with a fixed pause between utterances. The queue and cursor are
// explicit; a single next() call advances the sequence, and Stop cancels it
// at any point, including mid-utterance.
type Reader struct {
	synth  speech.Synthesizer
	clk    clock.Clock
	logger zerolog.Logger
	gap    time.Duration

	mu     sync.Mutex
	locale string
	queue  []string
	cursor int
	cancel context.CancelFunc
}

func NewReader(synth speech.Synthesizer, clk clock.Clock, locale string, gap time.Duration) *Reader {
	if !SupportedLocale(locale) {
		locale = LocaleEnglish
	}
	if gap <= 0 {
		gap = 500 * time.Millisecond
	}
	return &Reader{
		synth:  synth,
		clk:    clk,
		logger: log.Logger("voice"),
		gap:    gap,
		locale: locale,
	}
}

// SetLocale switches the reading language. Unsupported locales are ignored.
func (r *Reader) SetLocale(locale string) bool {
	if !SupportedLocale(locale) {
		return false
	}
	r.mu.Lock()
	r.locale = locale
	r.mu.Unlock()
	return true
}

func (r *Reader) Locale() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locale
}

// Available reports whether the underlying speech capability is usable.
func (r *Reader) Available() bool {
	return r.synth.Available()
}

// Speak cancels any in-progress sequence and reads records in order. An
// empty list produces a single "no alerts" utterance.
func (r *Reader) Speak(records []notify.Record) {
	if !r.synth.Available() {
		r.logger.Warn().Msg("speech capability unavailable, skipping read")
		return
	}
	r.Stop()

	r.mu.Lock()
	locale := r.locale
	utterances := make([]string, 0, len(records))
	for _, rec := range records {
		text := rec.Message
		if rec.Title != "" {
			text = rec.Title + ". " + rec.Message
		}
		utterances = append(utterances, Translate(locale, text))
	}
	if len(utterances) == 0 {
		utterances = []string{Translate(locale, PhraseNoAlerts)}
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.queue = utterances
	r.cursor = 0
	r.cancel = cancel
	r.mu.Unlock()

	go r.run(ctx, locale)
}

// Announce speaks a single phrase (relay confirmations and the like),
// interrupting any alert read-out in progress.
func (r *Reader) Announce(phrase string) {
	if !r.synth.Available() {
		return
	}
	r.Stop()

	r.mu.Lock()
	locale := r.locale
	ctx, cancel := context.WithCancel(context.Background())
	r.queue = []string{Translate(locale, phrase)}
	r.cursor = 0
	r.cancel = cancel
	r.mu.Unlock()

	go r.run(ctx, locale)
}

// Stop halts the sequence immediately, mid-utterance included.
func (r *Reader) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.queue = nil
	r.cursor = 0
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		r.synth.Stop()
	}
}

// next advances the cursor and returns the next utterance.
func (r *Reader) next() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cursor >= len(r.queue) {
		return "", false
	}
	text := r.queue[r.cursor]
	r.cursor++
	return text, true
}

func (r *Reader) run(ctx context.Context, locale string) {
	for {
		text, ok := r.next()
		if !ok {
			return
		}
		if err := r.synth.Speak(ctx, text, locale); err != nil {
			r.logger.Warn().Msgf("utterance failed: %s", err)
		}
		if ctx.Err() != nil {
			return
		}
		timer := r.clk.Timer(r.gap)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
