package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/pickit/print-system/internal/api/metrics"
	"github.com/pickit/print-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher fans ready notifications out to registered senders using a fixed
// set of workers. Jobs are sharded by job ID, so the effects of a single job
// are delivered in order, and enqueueing never runs sender code on the
// caller's goroutine.
type Dispatcher struct {
	workers []chan ports.ReadyNotification
	senders []ports.Notifier
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, senders []ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ReadyNotification, numWorkers),
		senders: senders,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ReadyNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// JobReady queues the notification for delivery. The call is non-blocking up
// to channelBuffer capacity and never surfaces sender failures to the caller.
func (d *Dispatcher) JobReady(n ports.ReadyNotification) {
	d.workers[d.shardIndex(n.JobID)] <- n
}

// shardIndex maps a job ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(jobID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(jobID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ReadyNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			for _, sender := range d.senders {
				d.deliver(ctx, id, sender, n)
			}
		}
	}
}

// deliver runs one sender in isolation. A panicking or failing sender must
// not take down the worker or block the remaining senders.
func (d *Dispatcher) deliver(ctx context.Context, workerID int, sender ports.Notifier, n ports.ReadyNotification) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Str("sender", sender.Name()).
				Str("job_id", n.JobID).
				Int("worker_id", workerID).
				Msg("notification sender panicked")
		}
	}()

	if err := sender.Notify(ctx, n); err != nil {
		metrics.NotificationsSentTotal.WithLabelValues(sender.Name(), "error").Inc()
		d.log.Error().Err(err).
			Str("sender", sender.Name()).
			Str("job_id", n.JobID).
			Int("worker_id", workerID).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationsSentTotal.WithLabelValues(sender.Name(), "ok").Inc()
}
