package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"
)

// Dispatcher fans alerts out to a Sink through a bounded queue. Enqueue never
// blocks: when the queue is full the alert is recorded as dropped and the
// caller continues. A transaction is accepted or rejected on its own merits
// whether or not the notification channel is healthy.
type Dispatcher struct {
	sink        Sink
	events      repositories.AlertEventRepositoryInterface
	breaker     *CircuitBreaker
	logger      *slog.Logger
	queue       chan Alert
	sendTimeout time.Duration
	workers     int
	wg          sync.WaitGroup
	stopOnce    sync.Once
}

type DispatcherOptions struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

func NewDispatcher(sink Sink, events repositories.AlertEventRepositoryInterface, opts DispatcherOptions, logger *slog.Logger) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		sink:        sink,
		events:      events,
		breaker:     NewCircuitBreaker(DefaultCircuitBreakerConfig()),
		logger:      logger,
		queue:       make(chan Alert, opts.QueueSize),
		sendTimeout: opts.SendTimeout,
		workers:     opts.Workers,
	}
}

// Start launches the dispatch workers. Call Stop to drain and shut down.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop closes the queue and waits for in-flight deliveries to finish
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

// Enqueue hands an alert to the workers without blocking. Overflow is
// recorded as dropped on the event and logged.
func (d *Dispatcher) Enqueue(alert Alert) {
	select {
	case d.queue <- alert:
	default:
		d.logger.Warn("notification queue full, dropping alert",
			"event_id", alert.EventID,
			"account_id", alert.AccountID,
			"kind", alert.Kind,
		)
		d.markStatus(alert, models.DispatchStatusDropped)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for alert := range d.queue {
		d.deliver(alert)
	}
}

func (d *Dispatcher) deliver(alert Alert) {
	if d.breaker.IsOpen() {
		d.logger.Warn("notification sink unavailable, failing alert",
			"event_id", alert.EventID,
			"error", ErrCircuitBreakerOpen,
		)
		d.markStatus(alert, models.DispatchStatusFailed)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.sink.Send(ctx, alert); err != nil {
		d.breaker.RecordFailure()
		d.logger.Error("failed to deliver alert notification",
			"event_id", alert.EventID,
			"account_id", alert.AccountID,
			"kind", alert.Kind,
			"error", err,
		)
		d.markStatus(alert, models.DispatchStatusFailed)
		return
	}

	d.breaker.RecordSuccess()
	d.logger.Info("alert notification delivered",
		"event_id", alert.EventID,
		"account_id", alert.AccountID,
		"kind", alert.Kind,
	)
	d.markStatus(alert, models.DispatchStatusDelivered)
}

func (d *Dispatcher) markStatus(alert Alert, status string) {
	if d.events == nil {
		return
	}
	if err := d.events.UpdateDispatchStatus(alert.EventID, status); err != nil {
		d.logger.Error("failed to update alert event dispatch status",
			"event_id", alert.EventID,
			"status", status,
			"error", err,
		)
	}
}
