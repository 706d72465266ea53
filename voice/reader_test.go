package voice

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/notify"
)

// fakeSynth records utterances as they are spoken. With blocking set, Speak
// holds until its context is cancelled, simulating a long utterance.
type fakeSynth struct {
	mu       sync.Mutex
	spoken   []spokenText
	spokenCh chan string
	blocking bool
	stops    int
	offline  bool
}

type spokenText struct {
	text   string
	locale string
	at     time.Time
}

func newFakeSynth() *fakeSynth {
	return &fakeSynth{spokenCh: make(chan string, 16)}
}

func (f *fakeSynth) Speak(ctx context.Context, text, locale string) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, spokenText{text: text, locale: locale, at: time.Now()})
	blocking := f.blocking
	f.mu.Unlock()
	f.spokenCh <- text
	if blocking {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeSynth) Stop() {
	f.mu.Lock()
	f.stops++
	f.mu.Unlock()
}

func (f *fakeSynth) Available() bool { return !f.offline }

func (f *fakeSynth) waitNext(t *testing.T) string {
	t.Helper()
	select {
	case text := <-f.spokenCh:
		return text
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for utterance")
		return ""
	}
}

func (f *fakeSynth) all() []spokenText {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]spokenText, len(f.spoken))
	copy(out, f.spoken)
	return out
}

func TestSpeakReadsRecordsInOrder(t *testing.T) {
	synth := newFakeSynth()
	gap := 5 * time.Millisecond
	r := NewReader(synth, clock.New(), LocaleEnglish, gap)

	r.Speak([]notify.Record{
		{Title: "heat", Message: "extreme heat"},
		{Message: "motor turned on"},
		{Title: "humidity", Message: "very high humidity"},
	})

	assert.Equal(t, "heat. extreme heat", synth.waitNext(t))
	assert.Equal(t, "motor turned on", synth.waitNext(t))
	assert.Equal(t, "humidity. very high humidity", synth.waitNext(t))

	spoken := synth.all()
	require.Len(t, spoken, 3)
	assert.GreaterOrEqual(t, spoken[1].at.Sub(spoken[0].at), gap)
	assert.GreaterOrEqual(t, spoken[2].at.Sub(spoken[1].at), gap)
}

func TestSpeakEmptyListSaysNoAlerts(t *testing.T) {
	synth := newFakeSynth()
	r := NewReader(synth, clock.New(), LocaleEnglish, time.Millisecond)

	r.Speak(nil)
	assert.Equal(t, PhraseNoAlerts, synth.waitNext(t))
}

func TestStopHaltsMidUtterance(t *testing.T) {
	synth := newFakeSynth()
	synth.blocking = true
	r := NewReader(synth, clock.New(), LocaleEnglish, time.Millisecond)

	r.Speak([]notify.Record{
		{Title: "heat", Message: "extreme heat"},
		{Title: "humidity", Message: "very high humidity"},
	})
	synth.waitNext(t)

	r.Stop()

	// The cancelled sequence must not speak the second record.
	select {
	case text := <-synth.spokenCh:
		t.Fatalf("unexpected utterance after stop: %q", text)
	case <-time.After(50 * time.Millisecond):
	}
	synth.mu.Lock()
	defer synth.mu.Unlock()
	assert.GreaterOrEqual(t, synth.stops, 1)
}

func TestSpeakInterruptsPreviousSequence(t *testing.T) {
	synth := newFakeSynth()
	synth.blocking = true
	r := NewReader(synth, clock.New(), LocaleEnglish, time.Millisecond)

	r.Speak([]notify.Record{{Message: "first run"}, {Message: "never read"}})
	synth.waitNext(t)

	synth.mu.Lock()
	synth.blocking = false
	synth.mu.Unlock()
	r.Speak([]notify.Record{{Message: "second run"}})
	assert.Equal(t, "second run", synth.waitNext(t))
}

func TestAnnounceTranslates(t *testing.T) {
	synth := newFakeSynth()
	r := NewReader(synth, clock.New(), LocaleHindi, time.Millisecond)

	r.Announce(PhraseMotorOn)
	text := synth.waitNext(t)
	assert.Equal(t, Translate(LocaleHindi, PhraseMotorOn), text)
	assert.NotEqual(t, PhraseMotorOn, text)

	spoken := synth.all()
	require.Len(t, spoken, 1)
	assert.Equal(t, LocaleHindi, spoken[0].locale)
}

func TestSetLocale(t *testing.T) {
	r := NewReader(newFakeSynth(), clock.New(), LocaleEnglish, time.Millisecond)

	assert.True(t, r.SetLocale(LocaleHindi))
	assert.Equal(t, LocaleHindi, r.Locale())

	assert.False(t, r.SetLocale("fr"))
	assert.Equal(t, LocaleHindi, r.Locale())
}

func TestUnavailableSynthSkipsRead(t *testing.T) {
	synth := newFakeSynth()
	synth.offline = true
	r := NewReader(synth, clock.New(), LocaleEnglish, time.Millisecond)

	assert.False(t, r.Available())
	r.Speak([]notify.Record{{Message: "extreme heat"}})

	select {
	case text := <-synth.spokenCh:
		t.Fatalf("unavailable synthesizer must not speak, got %q", text)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTranslateFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "some unknown phrase", Translate(LocaleHindi, "some unknown phrase"))
	assert.Equal(t, PhraseNoAlerts, Translate(LocaleEnglish, PhraseNoAlerts))
	assert.Equal(t, "text", Translate("fr", "text"))
}
