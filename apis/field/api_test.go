package field

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/cloud"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/configs"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/httpx"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/mock"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/notify"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/relay"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/telemetry"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/voice"
)

type stubSynth struct {
	available bool
	spoken    chan string
}

func (s *stubSynth) Speak(_ context.Context, text, _ string) error {
	s.spoken <- text
	return nil
}
func (s *stubSynth) Stop()           {}
func (s *stubSynth) Available() bool { return s.available }

type apiFixture struct {
	router *gin.Engine
	client *mock.MockClient
	poller *telemetry.Poller
	queue  *notify.Queue
	reader *voice.Reader
	synth  *stubSynth
	clk    *clock.Mock
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	clk := clock.NewMock()
	client := mock.NewMockClient(ctrl)
	queue := notify.NewQueue(clk)
	hub := notify.NewHub()
	go hub.Run()
	poller := telemetry.NewPoller(client, clk, configs.PollConfig{
		SnapshotInterval: 5 * time.Second,
		HistoryHours:     24,
		HistoryLimit:     20,
		RefreshDelay:     2 * time.Second,
	})
	dispatcher := relay.NewDispatcher(client, queue, nil, func() {}, relay.Config{
		RelayIDs:      []string{"motor", "hv", "hv_auto"},
		CommandOkTTL:  time.Minute,
		CommandErrTTL: time.Minute,
	})
	synth := &stubSynth{available: true, spoken: make(chan string, 4)}
	reader := voice.NewReader(synth, clk, voice.LocaleEnglish, time.Millisecond)

	api := &FieldAPI{
		Poller:     poller,
		Queue:      queue,
		Hub:        hub,
		Dispatcher: dispatcher,
		Reader:     reader,
		logger:     log.Logger("field_api"),
		validate:   validator.New(),
	}
	router := gin.New()
	httpx.RegisterGinGroupHandler(&router.RouterGroup, api)
	return &apiFixture{router: router, client: client, poller: poller, queue: queue, reader: reader, synth: synth, clk: clk}
}

type envelope struct {
	Code int                    `json:"code"`
	Msg  string                 `json:"msg"`
	Data map[string]interface{} `json:"data"`
}

func (f *apiFixture) do(t *testing.T, method, path string, body []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestGetSnapshot(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("before first poll", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, "/api/v1/snapshot", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, env.Code)
		assert.Nil(t, env.Data["snapshot"])
		assert.Equal(t, false, env.Data["connected"])
	})

	f.client.EXPECT().GetLatestSnapshot().
		Return(cloud.RawSnapshot{"temperature": 25.0}, nil)
	f.poller.Poll()

	w, env := f.do(t, http.MethodGet, "/api/v1/snapshot", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env.Data["connected"])
	snap, ok := env.Data["snapshot"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 25.0, snap["temperature"])
	assert.Nil(t, snap["humidity"], "missing metrics serialize as null")
}

func TestListAndDismissNotifications(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.queue.Push("Temperature", "extreme heat", telemetry.SeverityDanger, time.Minute)

	w, env := f.do(t, http.MethodGet, "/api/v1/notifications", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items, ok := env.Data["notifications"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "alert-octagon", item["icon"])
	assert.Equal(t, "#c62828", item["color"])

	t.Run("bad id", func(t *testing.T) {
		w, env := f.do(t, http.MethodDelete, "/api/v1/notifications/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 2001, env.Code)
	})

	w, _ = f.do(t, http.MethodDelete, "/api/v1/notifications/"+rec.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.queue.Active())
}

func TestToggleRelay(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("unknown relay id", func(t *testing.T) {
		w, env := f.do(t, http.MethodPost, "/api/v1/relays/pump/toggle", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 2001, env.Code)
	})

	f.client.EXPECT().SendControlCommand("motor:on").
		Return(&cloud.ControlResult{Success: true}, nil)
	w, env := f.do(t, http.MethodPost, "/api/v1/relays/motor/toggle", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env.Data["is_on"])

	t.Run("upstream failure", func(t *testing.T) {
		f.client.EXPECT().SendControlCommand("hv:on").
			Return(nil, errors.New("connection refused"))
		w, env := f.do(t, http.MethodPost, "/api/v1/relays/hv/toggle", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, 3002, env.Code)
	})
}

func TestListRelays(t *testing.T) {
	f := newAPIFixture(t)

	w, env := f.do(t, http.MethodGet, "/api/v1/relays", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	relays, ok := env.Data["relays"].([]interface{})
	require.True(t, ok)
	require.Len(t, relays, 3)
	first := relays[0].(map[string]interface{})
	assert.Equal(t, "motor", first["relay_id"])
	assert.Equal(t, false, first["is_on"])
}

func TestSpeakAlerts(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("bad locale", func(t *testing.T) {
		w, env := f.do(t, http.MethodPost, "/api/v1/voice/speak", []byte(`{"locale":"fr"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 2001, env.Code)
	})

	w, env := f.do(t, http.MethodPost, "/api/v1/voice/speak", []byte(`{"locale":"hi"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env.Data["speaking"])
	assert.Equal(t, voice.LocaleHindi, f.reader.Locale())

	// An empty queue yields the localized "no alerts" utterance.
	select {
	case text := <-f.synth.spoken:
		assert.Equal(t, voice.Translate(voice.LocaleHindi, voice.PhraseNoAlerts), text)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for utterance")
	}

	w, env = f.do(t, http.MethodPost, "/api/v1/voice/stop", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, env.Data["speaking"])
}

func TestSpeakUnavailable(t *testing.T) {
	f := newAPIFixture(t)
	f.synth.available = false

	w, env := f.do(t, http.MethodPost, "/api/v1/voice/speak", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 3003, env.Code)
}
