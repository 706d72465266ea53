package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
)

type speakRequest struct {
	Text   string `json:"text"`
	Locale string `json:"locale"`
}

// HTTPSynthesizer posts utterances to a local text-to-speech sidecar. An
// empty endpoint means the capability is absent and Available reports false.
type HTTPSynthesizer struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewHTTPSynthesizer(endpoint string) *HTTPSynthesizer {
	return &HTTPSynthesizer{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.Logger("speech"),
	}
}

func (s *HTTPSynthesizer) Available() bool {
	return s.endpoint != ""
}

func (s *HTTPSynthesizer) Speak(ctx context.Context, text, locale string) error {
	payload, err := json.Marshal(speakRequest{Text: text, Locale: locale})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/speak", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn().Int("status", resp.StatusCode).Msg("tts sidecar rejected utterance")
	}
	return nil
}

func (s *HTTPSynthesizer) Stop() {
	if !s.Available() {
		return
	}
	resp, err := s.httpClient.Post(s.endpoint+"/stop", "application/json", nil)
	if err != nil {
		s.logger.Warn().Msgf("tts stop error: %s", err)
		return
	}
	_ = resp.Body.Close()
}
