package notifier

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// stubSink lets each test script the sink's behavior
type stubSink struct {
	mu    sync.Mutex
	sent  []Alert
	fail  bool
	block chan struct{}
}

func (s *stubSink) Send(ctx context.Context, alert Alert) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp relay unreachable")
	}
	s.sent = append(s.sent, alert)
	return nil
}

func (s *stubSink) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func testAlert() Alert {
	return Alert{
		EventID:        uuid.New(),
		AccountID:      uuid.New(),
		Kind:           models.AlertKindBalanceDrop,
		Threshold:      decimal.NewFromInt(50),
		RecipientEmail: "jo@example.com",
		RecipientName:  "Jo Doe",
	}
}

func TestDispatcher_DeliversAndMarksDelivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := &stubSink{}
	events := repository_mocks.NewMockAlertEventRepositoryInterface(ctrl)
	alert := testAlert()

	events.EXPECT().
		UpdateDispatchStatus(alert.EventID, models.DispatchStatusDelivered).
		Return(nil)

	d := NewDispatcher(sink, events, DispatcherOptions{QueueSize: 4, Workers: 1}, slog.Default())
	d.Start()

	d.Enqueue(alert)
	d.Stop()

	assert.Equal(t, 1, sink.sentCount())
	assert.Equal(t, alert.EventID, sink.sent[0].EventID)
}

func TestDispatcher_SinkFailureMarksFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := &stubSink{fail: true}
	events := repository_mocks.NewMockAlertEventRepositoryInterface(ctrl)
	alert := testAlert()

	events.EXPECT().
		UpdateDispatchStatus(alert.EventID, models.DispatchStatusFailed).
		Return(nil)

	d := NewDispatcher(sink, events, DispatcherOptions{QueueSize: 4, Workers: 1}, slog.Default())
	d.Start()

	d.Enqueue(alert)
	d.Stop()

	assert.Zero(t, sink.sentCount())
}

func TestDispatcher_OverflowDropsWithoutBlocking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := &stubSink{}
	events := repository_mocks.NewMockAlertEventRepositoryInterface(ctrl)

	first := testAlert()
	second := testAlert()

	events.EXPECT().
		UpdateDispatchStatus(second.EventID, models.DispatchStatusDropped).
		Return(nil)

	// Workers never started: the first alert fills the queue, the second
	// overflows. Enqueue must return promptly either way.
	d := NewDispatcher(sink, events, DispatcherOptions{QueueSize: 1, Workers: 1}, slog.Default())

	done := make(chan struct{})
	go func() {
		d.Enqueue(first)
		d.Enqueue(second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestDispatcher_OpenBreakerFailsWithoutCallingSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := &stubSink{fail: true}
	events := repository_mocks.NewMockAlertEventRepositoryInterface(ctrl)
	events.EXPECT().
		UpdateDispatchStatus(gomock.Any(), models.DispatchStatusFailed).
		Return(nil).
		Times(7)

	d := NewDispatcher(sink, events, DispatcherOptions{QueueSize: 16, Workers: 1}, slog.Default())
	d.Start()

	// Five failures trip the breaker; the remaining two are shed without
	// touching the sink.
	for i := 0; i < 7; i++ {
		d.Enqueue(testAlert())
	}
	d.Stop()

	assert.Zero(t, sink.sentCount())
	assert.Equal(t, StateOpen, d.breaker.GetState())
}

func TestDispatcher_SendTimeoutCancelsSlowSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := &stubSink{block: make(chan struct{})}
	events := repository_mocks.NewMockAlertEventRepositoryInterface(ctrl)
	alert := testAlert()

	events.EXPECT().
		UpdateDispatchStatus(alert.EventID, models.DispatchStatusFailed).
		Return(nil)

	d := NewDispatcher(sink, events, DispatcherOptions{
		QueueSize:   4,
		Workers:     1,
		SendTimeout: 20 * time.Millisecond,
	}, slog.Default())
	d.Start()

	d.Enqueue(alert)
	d.Stop()

	assert.Zero(t, sink.sentCount())
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := &stubSink{}
	events := repository_mocks.NewMockAlertEventRepositoryInterface(ctrl)
	events.EXPECT().
		UpdateDispatchStatus(gomock.Any(), models.DispatchStatusDelivered).
		Return(nil).
		Times(10)

	d := NewDispatcher(sink, events, DispatcherOptions{QueueSize: 16, Workers: 2}, slog.Default())
	d.Start()

	for i := 0; i < 10; i++ {
		d.Enqueue(testAlert())
	}
	d.Stop()

	assert.Equal(t, 10, sink.sentCount())
}

func TestDispatcher_StopIsIdempotent(t *testing.T) {
	d := NewDispatcher(&stubSink{}, nil, DispatcherOptions{}, slog.Default())
	d.Start()

	d.Stop()
	d.Stop()
}
