package relay

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/cloud"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/mock"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/notify"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/telemetry"
)

func testConfig() Config {
	return Config{
		RelayIDs:      []string{"motor", "hv", "hv_auto"},
		CommandOkTTL:  4 * time.Second,
		CommandErrTTL: 10 * time.Second,
	}
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *mock.MockClient, *notify.Queue, *int) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	client := mock.NewMockClient(ctrl)
	queue := notify.NewQueue(clock.NewMock())
	refreshes := 0
	d := NewDispatcher(client, queue, nil, func() { refreshes++ }, testConfig())
	return d, client, queue, &refreshes
}

func TestToggleSuccess(t *testing.T) {
	d, client, queue, refreshes := newTestDispatcher(t)

	client.EXPECT().SendControlCommand("motor:on").
		Return(&cloud.ControlResult{Success: true}, nil)

	st, err := d.Toggle("motor")
	require.NoError(t, err)
	assert.True(t, st.IsOn)
	assert.False(t, st.Pending)
	assert.Equal(t, 1, *refreshes)

	active := queue.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "motor turned on", active[0].Message)
	assert.Equal(t, telemetry.SeverityGood, active[0].Severity)
	assert.Equal(t, 4*time.Second, active[0].TTL)

	// A second toggle sends the opposite command.
	client.EXPECT().SendControlCommand("motor:off").
		Return(&cloud.ControlResult{Success: true}, nil)
	st, err = d.Toggle("motor")
	require.NoError(t, err)
	assert.False(t, st.IsOn)
}

func TestToggleRejectedKeepsState(t *testing.T) {
	d, client, queue, refreshes := newTestDispatcher(t)

	client.EXPECT().SendControlCommand("hv:on").
		Return(&cloud.ControlResult{Success: false, Error: "relay busy"}, nil)

	st, err := d.Toggle("hv")
	require.Error(t, err)
	assert.False(t, st.IsOn, "state flips only on confirmed success")
	assert.Equal(t, 1, *refreshes, "a refresh is requested even after failure")

	active := queue.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "hv command failed: relay busy", active[0].Message)
	assert.Equal(t, telemetry.SeverityDanger, active[0].Severity)
	assert.Equal(t, 10*time.Second, active[0].TTL)
}

func TestToggleTransportError(t *testing.T) {
	d, client, queue, _ := newTestDispatcher(t)

	sendErr := errors.New("connection refused")
	client.EXPECT().SendControlCommand("motor:on").Return(nil, sendErr)

	st, err := d.Toggle("motor")
	assert.ErrorIs(t, err, sendErr)
	assert.False(t, st.IsOn)

	active := queue.Active()
	require.Len(t, active, 1)
	assert.Equal(t, telemetry.SeverityDanger, active[0].Severity)
}

func TestToggleUnknownRelay(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)

	_, err := d.Toggle("pump")
	assert.ErrorIs(t, err, ErrUnknownRelay)
}

func TestToggleWhileSending(t *testing.T) {
	d, client, _, _ := newTestDispatcher(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	client.EXPECT().SendControlCommand("motor:on").
		DoAndReturn(func(string) (*cloud.ControlResult, error) {
			close(entered)
			<-release
			return &cloud.ControlResult{Success: true}, nil
		})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = d.Toggle("motor")
	}()
	<-entered

	states := d.States()
	require.Len(t, states, 3)
	assert.True(t, states[0].Pending, "motor command is in flight")

	_, err := d.Toggle("motor")
	assert.ErrorIs(t, err, ErrRelaySending)

	// Other relays are not blocked by the motor command.
	client.EXPECT().SendControlCommand("hv:on").
		Return(&cloud.ControlResult{Success: true}, nil)
	_, err = d.Toggle("hv")
	assert.NoError(t, err)

	close(release)
	<-done
	assert.False(t, d.States()[0].Pending)
}

func TestReconcileAdoptsTelemetry(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)

	d.Reconcile(telemetry.SensorSnapshot{
		MotorOn:  telemetry.FlagOf(true),
		HVAutoOn: telemetry.FlagOf(true),
		// hv flag absent from the snapshot
	})

	states := d.States()
	require.Len(t, states, 3)
	assert.Equal(t, State{RelayID: "motor", IsOn: true}, states[0])
	assert.Equal(t, State{RelayID: "hv", IsOn: false}, states[1])
	assert.Equal(t, State{RelayID: "hv_auto", IsOn: true}, states[2])
}

func TestReconcileSkipsSendingRelay(t *testing.T) {
	d, client, _, _ := newTestDispatcher(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	client.EXPECT().SendControlCommand("motor:on").
		DoAndReturn(func(string) (*cloud.ControlResult, error) {
			close(entered)
			<-release
			return &cloud.ControlResult{Success: true}, nil
		})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = d.Toggle("motor")
	}()
	<-entered

	// Stale telemetry must not disturb a relay with a command in flight.
	d.Reconcile(telemetry.SensorSnapshot{MotorOn: telemetry.FlagOf(false)})

	close(release)
	<-done
	assert.True(t, d.States()[0].IsOn, "confirmed command wins over stale telemetry")
}
