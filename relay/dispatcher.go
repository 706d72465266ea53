package relay

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/cloud"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/notify"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/telemetry"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/voice"
)

var (
	ErrUnknownRelay = errors.New("unknown relay")
	ErrRelaySending = errors.New("relay command already in flight")
)

// State is the externally visible control state of one relay.
type State struct {
	RelayID string `json:"relay_id"`
	IsOn    bool   `json:"is_on"`
	Pending bool   `json:"pending"`
}

type relayState struct {
	isOn    bool
	sending bool
}

// Config carries the dispatcher's notification and timing knobs.
type Config struct {
	RelayIDs      []string
	CommandOkTTL  time.Duration
	CommandErrTTL time.Duration
}

// Dispatcher owns the per-relay idle -> sending -> idle command state
// machine. IsOn flips only after a confirmed success and is passively
// reconciled against relay telemetry from later snapshots.
type Dispatcher struct {
	client         cloud.Client
	queue          *notify.Queue
	reader         *voice.Reader
	requestRefresh func()
	cfg            Config
	logger         zerolog.Logger

	mu     sync.Mutex
	states map[string]*relayState
}

func NewDispatcher(client cloud.Client, queue *notify.Queue, reader *voice.Reader, requestRefresh func(), cfg Config) *Dispatcher {
	states := make(map[string]*relayState, len(cfg.RelayIDs))
	for _, id := range cfg.RelayIDs {
		states[id] = &relayState{}
	}
	return &Dispatcher{
		client:         client,
		queue:          queue,
		reader:         reader,
		requestRefresh: requestRefresh,
		cfg:            cfg,
		logger:         log.Logger("relay"),
		states:         states,
	}
}

// Toggle sends the opposite of the relay's current state. While a command is
// in flight for the relay, further toggles are rejected with ErrRelaySending.
func (d *Dispatcher) Toggle(relayID string) (State, error) {
	d.mu.Lock()
	st, ok := d.states[relayID]
	if !ok {
		d.mu.Unlock()
		return State{}, ErrUnknownRelay
	}
	if st.sending {
		d.mu.Unlock()
		return State{}, ErrRelaySending
	}
	st.sending = true
	desired := !st.isOn
	d.mu.Unlock()

	command := fmt.Sprintf("%s:%s", relayID, onOff(desired))
	d.logger.Info().Str("relay", relayID).Msgf("sending command %q", command)
	result, err := d.client.SendControlCommand(command)

	d.mu.Lock()
	st.sending = false
	success := err == nil && result != nil && result.Success
	if success {
		st.isOn = desired
	}
	out := State{RelayID: relayID, IsOn: st.isOn, Pending: false}
	d.mu.Unlock()

	if success {
		d.queue.Push("", fmt.Sprintf("%s turned %s", relayID, onOff(desired)),
			telemetry.SeverityGood, d.cfg.CommandOkTTL)
		if d.reader != nil {
			d.reader.Announce(confirmationPhrase(relayID, desired))
		}
	} else {
		msg := commandErrorMessage(relayID, result, err)
		d.logger.Error().Str("relay", relayID).Msg(msg)
		d.queue.Push("", msg, telemetry.SeverityDanger, d.cfg.CommandErrTTL)
	}

	// Settled either way: ask for a near-term re-poll so observed relay
	// state catches up with (or corrects) ours.
	if d.requestRefresh != nil {
		d.requestRefresh()
	}
	if !success && err != nil {
		return out, err
	}
	if !success {
		return out, fmt.Errorf("command rejected: %s", resultError(result))
	}
	return out, nil
}

// Reconcile adopts relay telemetry from a snapshot for every relay without a
// command in flight.
func (d *Dispatcher) Reconcile(snap telemetry.SensorSnapshot) {
	observed := map[string]telemetry.Flag{
		"motor":   snap.MotorOn,
		"hv":      snap.HVOn,
		"hv_auto": snap.HVAutoOn,
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, flag := range observed {
		st, ok := d.states[id]
		if !ok || st.sending || !flag.Valid {
			continue
		}
		if st.isOn != flag.Value {
			d.logger.Info().Str("relay", id).Bool("observed", flag.Value).Msg("reconciling relay state from telemetry")
			st.isOn = flag.Value
		}
	}
}

// States lists every relay's control state in configuration order.
func (d *Dispatcher) States() []State {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]State, 0, len(d.cfg.RelayIDs))
	for _, id := range d.cfg.RelayIDs {
		st := d.states[id]
		out = append(out, State{RelayID: id, IsOn: st.isOn, Pending: st.sending})
	}
	return out
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func confirmationPhrase(relayID string, on bool) string {
	switch relayID {
	case "motor":
		if on {
			return voice.PhraseMotorOn
		}
		return voice.PhraseMotorOff
	case "hv":
		if on {
			return voice.PhraseHVOn
		}
		return voice.PhraseHVOff
	case "hv_auto":
		if on {
			return voice.PhraseHVAutoOn
		}
		return voice.PhraseHVAutoOff
	}
	return fmt.Sprintf("%s turned %s", relayID, onOff(on))
}

func commandErrorMessage(relayID string, result *cloud.ControlResult, err error) string {
	if err != nil {
		return fmt.Sprintf("%s command failed: %s", relayID, err)
	}
	return fmt.Sprintf("%s command failed: %s", relayID, resultError(result))
}

func resultError(result *cloud.ControlResult) string {
	if result == nil {
		return "no response"
	}
	if result.Error != "" {
		return result.Error
	}
	if result.Message != "" {
		return result.Message
	}
	return "rejected"
}
