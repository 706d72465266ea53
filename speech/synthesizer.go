package speech

import "context"

// Synthesizer is the opaque speech capability consumed by the voice reader.
// Implementations are best-effort; a failed utterance is logged and skipped,
// never fatal.
type Synthesizer interface {
	// Speak synthesizes text in the given locale and blocks until playback
	// finishes or ctx is cancelled.
	Speak(ctx context.Context, text, locale string) error
	// Stop cancels any in-progress utterance.
	Stop()
	// Available reports whether the capability is usable at all.
	Available() bool
}
